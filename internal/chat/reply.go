package chat

// Reply is one outbound action for the transport layer to render. Text plus
// an optional reply keyboard, or a binary artifact (photo or document).
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
	Photo          []byte
	Document       []byte
	Filename       string
}

func textReply(text string, keyboard [][]string) Reply {
	return Reply{Text: text, Keyboard: keyboard}
}
