// Package chat implements the conversational entry state machine. It consumes
// one inbound text per user turn and produces outbound replies, committing
// finished drafts through the stores.
package chat

import (
	"sync"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// Flow identifies one multi-step entry flow.
type Flow int

// Entry flows. The zero value means no flow is in progress.
const (
	FlowTransaction Flow = iota + 1
	FlowAddCategory
	FlowDeleteCategory
	FlowBudget
	FlowRecurring
	FlowExport
)

// Step identifies the field a flow is currently collecting.
type Step int

// Flow steps.
const (
	StepKind Step = iota + 1
	StepCategory
	StepAmount
	StepDescription
	StepName
	StepPeriod
	StepFrequency
	StepRange
)

// Draft is the in-memory partial state of one flow. It is never persisted;
// it lives only between the flow's first and last conversational turn.
type Draft struct {
	Flow        Flow
	Step        Step
	Kind        models.Kind
	Category    string
	Amount      decimal.Decimal
	Description string
	Period      models.Period
	Frequency   models.Frequency
}

// SessionManager holds per-user drafts. Each user's draft is only touched by
// that user's own in-flight turn; the lock guards the map across users.
type SessionManager struct {
	mu     sync.Mutex
	drafts map[int64]*Draft
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{drafts: make(map[int64]*Draft)}
}

// Start begins a new flow for the user, discarding any prior draft.
func (m *SessionManager) Start(userID int64, flow Flow, step Step) *Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &Draft{Flow: flow, Step: step}
	m.drafts[userID] = d
	return d
}

// Get returns the user's current draft, or nil when the user is idle.
func (m *SessionManager) Get(userID int64) *Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drafts[userID]
}

// Clear discards the user's draft, returning the user to the idle state.
func (m *SessionManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, userID)
}
