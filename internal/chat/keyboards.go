package chat

import "gitlab.com/vlkv/finance-bot/internal/models"

// Menu and flow button labels. The transport layer renders them as reply
// keyboard buttons; the router matches inbound text against them verbatim.
const (
	BtnAddIncome  = "📈 Добавить доход"
	BtnAddExpense = "📉 Добавить расход"
	BtnBalance    = "💰 Баланс"
	BtnStats      = "📊 Статистика"
	BtnHistory    = "🗂 История"
	BtnExport     = "📤 Экспорт"
	BtnSettings   = "⚙️ Настройки"

	BtnNewCategory    = "➕ Новая категория"
	BtnDeleteCategory = "🗑 Удалить категорию"
	BtnBudgetLimit    = "🎯 Лимит бюджета"
	BtnRecurring      = "🔁 Регулярный платёж"
	BtnBudgets        = "💼 Бюджеты"
	BtnBack           = "⬅️ Назад"

	BtnCancel = "❌ Отмена"
	BtnSkip   = "➡️ Пропустить"

	BtnKindIncome  = "Доход"
	BtnKindExpense = "Расход"

	BtnPeriodDay   = "День"
	BtnPeriodWeek  = "Неделя"
	BtnPeriodMonth = "Месяц"

	BtnFreqDaily   = "Ежедневно"
	BtnFreqWeekly  = "Еженедельно"
	BtnFreqMonthly = "Ежемесячно"

	BtnRangeWeek  = "Неделя"
	BtnRangeMonth = "Месяц"
	BtnRangeAll   = "Всё время"
)

// MainKeyboard is the idle-state menu.
func MainKeyboard() [][]string {
	return [][]string{
		{BtnAddIncome, BtnAddExpense},
		{BtnBalance, BtnStats},
		{BtnHistory, BtnExport},
		{BtnSettings},
	}
}

func settingsKeyboard() [][]string {
	return [][]string{
		{BtnNewCategory, BtnDeleteCategory},
		{BtnBudgetLimit, BtnRecurring},
		{BtnBudgets, BtnBack},
	}
}

func kindKeyboard() [][]string {
	return [][]string{
		{BtnKindIncome, BtnKindExpense},
		{BtnCancel},
	}
}

func periodKeyboard() [][]string {
	return [][]string{
		{BtnPeriodDay, BtnPeriodWeek, BtnPeriodMonth},
		{BtnCancel},
	}
}

func frequencyKeyboard() [][]string {
	return [][]string{
		{BtnFreqDaily, BtnFreqWeekly, BtnFreqMonthly},
		{BtnCancel},
	}
}

func rangeKeyboard() [][]string {
	return [][]string{
		{BtnRangeWeek, BtnRangeMonth, BtnRangeAll},
		{BtnCancel},
	}
}

func skipKeyboard() [][]string {
	return [][]string{
		{BtnSkip},
		{BtnCancel},
	}
}

func cancelKeyboard() [][]string {
	return [][]string{{BtnCancel}}
}

// categoryKeyboard offers one category per row, cancel last.
func categoryKeyboard(categories []string) [][]string {
	rows := make([][]string, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, []string{c})
	}
	return append(rows, []string{BtnCancel})
}

func kindFromButton(text string) (models.Kind, bool) {
	switch text {
	case BtnKindIncome:
		return models.KindIncome, true
	case BtnKindExpense:
		return models.KindExpense, true
	}
	return "", false
}

func periodFromButton(text string) (models.Period, bool) {
	switch text {
	case BtnPeriodDay:
		return models.PeriodDay, true
	case BtnPeriodWeek:
		return models.PeriodWeek, true
	case BtnPeriodMonth:
		return models.PeriodMonth, true
	}
	return "", false
}

func frequencyFromButton(text string) (models.Frequency, bool) {
	switch text {
	case BtnFreqDaily:
		return models.FrequencyDaily, true
	case BtnFreqWeekly:
		return models.FrequencyWeekly, true
	case BtnFreqMonthly:
		return models.FrequencyMonthly, true
	}
	return "", false
}
