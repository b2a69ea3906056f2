package chat

import (
	"context"
	"strings"

	"gitlab.com/vlkv/finance-bot/internal/logger"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// User-facing texts shared across flows.
const (
	msgGreeting = "👋 Привет! Я твой личный финансовый помощник.\n\n" +
		"Используй кнопки внизу для управления финансами:\n" +
		"📈 Добавить доход - записать полученные деньги\n" +
		"📉 Добавить расход - записать потраченные деньги\n" +
		"💰 Баланс - посмотреть общую финансовую статистику\n" +
		"📊 Статистика - детальная статистика расходов за месяц"
	msgUnknown      = "❓ Я не понял вашу команду. Используйте кнопки меню."
	msgCancelled    = "Действие отменено."
	msgChooseOption = "📝 Выберите одну из опций ниже:"
	msgStoreFailed  = "❌ Не удалось сохранить транзакцию. Попробуйте снова."
	msgBadCategory  = "❌ Ошибка! Выберите корректную категорию из списка."
	msgBadAmount    = "❌ Ошибка! Введите корректную сумму в числовом формате."
	msgNegAmount    = "❌ Сумма должна быть положительной."
)

// Router is the conversational entry point: one inbound message per user turn
// in, a list of outbound replies out. It owns the session registry and
// commits finished drafts through the stores.
type Router struct {
	sessions   *SessionManager
	ledger     LedgerStore
	categories CategoryStore
	budgets    BudgetStore
	recurring  RecurringStore
}

// NewRouter creates a Router over the given stores.
func NewRouter(ledger LedgerStore, categories CategoryStore, budgets BudgetStore, recurring RecurringStore) *Router {
	return &Router{
		sessions:   NewSessionManager(),
		ledger:     ledger,
		categories: categories,
		budgets:    budgets,
		recurring:  recurring,
	}
}

// Sessions exposes the session registry. Used by tests.
func (r *Router) Sessions() *SessionManager {
	return r.sessions
}

// HandleMessage consumes one inbound text for a user and returns the outbound
// replies. Menu buttons discard any in-flight draft; any other text is fed to
// the current flow step, or answered with a hint when the user is idle.
func (r *Router) HandleMessage(ctx context.Context, userID int64, text string) []Reply {
	text = strings.TrimSpace(text)

	// Universal cancel, recognized in any step.
	if text == BtnCancel {
		r.sessions.Clear(userID)
		return []Reply{textReply(msgCancelled, MainKeyboard())}
	}

	if replies, ok := r.handleMenu(ctx, userID, text); ok {
		return replies
	}

	if d := r.sessions.Get(userID); d != nil {
		return r.advance(ctx, userID, d, text)
	}

	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// handleMenu dispatches menu buttons and commands. Starting anything from the
// menu implicitly discards a prior draft.
func (r *Router) handleMenu(ctx context.Context, userID int64, text string) ([]Reply, bool) {
	switch {
	case strings.HasPrefix(text, "/start"):
		r.sessions.Clear(userID)
		return []Reply{textReply(msgGreeting, MainKeyboard())}, true

	case text == BtnAddIncome:
		return r.startTransaction(ctx, userID, models.KindIncome), true

	case text == BtnAddExpense:
		return r.startTransaction(ctx, userID, models.KindExpense), true

	case text == BtnBalance:
		r.sessions.Clear(userID)
		return r.balance(ctx, userID), true

	case text == BtnStats:
		r.sessions.Clear(userID)
		return r.monthlyStats(ctx, userID), true

	case text == BtnHistory:
		r.sessions.Clear(userID)
		return r.history(ctx, userID), true

	case text == BtnExport:
		r.sessions.Start(userID, FlowExport, StepRange)
		return []Reply{textReply("📤 Выберите период для экспорта:", rangeKeyboard())}, true

	case text == BtnSettings:
		r.sessions.Clear(userID)
		return []Reply{textReply("⚙️ Настройки:", settingsKeyboard())}, true

	case text == BtnBack:
		r.sessions.Clear(userID)
		return []Reply{textReply(msgChooseOption, MainKeyboard())}, true

	case text == BtnNewCategory:
		r.sessions.Start(userID, FlowAddCategory, StepKind)
		return []Reply{textReply("➕ Категория для дохода или расхода?", kindKeyboard())}, true

	case text == BtnDeleteCategory:
		r.sessions.Start(userID, FlowDeleteCategory, StepKind)
		return []Reply{textReply("🗑 Категория дохода или расхода?", kindKeyboard())}, true

	case text == BtnBudgetLimit:
		r.sessions.Start(userID, FlowBudget, StepKind)
		return []Reply{textReply("🎯 Лимит на доход или расход?", kindKeyboard())}, true

	case text == BtnRecurring:
		r.sessions.Start(userID, FlowRecurring, StepKind)
		return []Reply{textReply("🔁 Регулярный доход или расход?", kindKeyboard())}, true

	case text == BtnBudgets:
		r.sessions.Clear(userID)
		return r.budgetStatus(ctx, userID), true
	}

	return nil, false
}

// advance feeds one text to the current flow step.
func (r *Router) advance(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Flow {
	case FlowTransaction:
		return r.advanceTransaction(ctx, userID, d, text)
	case FlowAddCategory:
		return r.advanceAddCategory(ctx, userID, d, text)
	case FlowDeleteCategory:
		return r.advanceDeleteCategory(ctx, userID, d, text)
	case FlowBudget:
		return r.advanceBudget(ctx, userID, d, text)
	case FlowRecurring:
		return r.advanceRecurring(ctx, userID, d, text)
	case FlowExport:
		return r.advanceExport(ctx, userID, d, text)
	}

	// Unreachable with a well-formed draft; drop it rather than wedge the user.
	logger.Log.Error().Int64("user_id", userID).Int("flow", int(d.Flow)).Msg("Draft with unknown flow")
	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// offeredCategories returns the categories a user may pick for a kind:
// the built-in defaults plus the user's own. A store failure degrades to the
// defaults so the flow stays usable.
func (r *Router) offeredCategories(ctx context.Context, userID int64, kind models.Kind) []string {
	offered := models.DefaultCategories(kind)
	userCats, err := r.categories.ListByUserAndKind(ctx, userID, kind)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list user categories")
		return offered
	}
	for _, c := range userCats {
		offered = append(offered, c.Name)
	}
	return offered
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
