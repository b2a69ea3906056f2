package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/vlkv/finance-bot/internal/logger"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

const historyLimit = 10

const msgQueryFailed = "❌ Не удалось получить данные. Попробуйте позже."

// balance reports all-time income, expense and net.
func (r *Router) balance(ctx context.Context, userID int64) []Reply {
	income, expense, err := r.ledger.Balance(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get balance")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}

	text := fmt.Sprintf(
		"💰 Ваш финансовый баланс:\nДоходы: %s руб.\nРасходы: %s руб.\nИтого: %s руб.",
		income.StringFixed(2), expense.StringFixed(2), income.Sub(expense).StringFixed(2),
	)
	return []Reply{textReply(text, MainKeyboard())}
}

// monthlyStats reports the current month's expense breakdown by category,
// as text plus a pie chart when rendering succeeds.
func (r *Router) monthlyStats(ctx context.Context, userID int64) []Reply {
	kind := models.KindExpense
	totals, err := r.ledger.MonthlyBreakdown(ctx, userID, &kind)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get monthly breakdown")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}
	if len(totals) == 0 {
		return []Reply{textReply("📊 За этот месяц нет статистики.", MainKeyboard())}
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика расходов за месяц:\n")
	for _, t := range totals {
		sb.WriteString(fmt.Sprintf("%s: %s руб.\n", t.Category, t.Total.StringFixed(2)))
	}
	replies := []Reply{textReply(strings.TrimRight(sb.String(), "\n"), MainKeyboard())}

	title := "Расходы за " + time.Now().Format("2006-01")
	png, err := GenerateBreakdownChart(totals, title)
	if err != nil {
		logger.Log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to render breakdown chart")
		return replies
	}
	return append(replies, Reply{Photo: png, Filename: "stats_" + time.Now().Format("2006-01") + ".png"})
}

// history shows the latest transactions, newest first.
func (r *Router) history(ctx context.Context, userID int64) []Reply {
	txs, err := r.ledger.ListByUser(ctx, userID, nil, nil, historyLimit)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list transactions")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}
	if len(txs) == 0 {
		return []Reply{textReply("🗂 История пока пуста.", MainKeyboard())}
	}

	var sb strings.Builder
	sb.WriteString("🗂 Последние операции:\n")
	for _, tx := range txs {
		sign := "📉"
		if tx.Kind == models.KindIncome {
			sign = "📈"
		}
		sb.WriteString(fmt.Sprintf("%s %s — %s руб. (%s)",
			sign, tx.Category, tx.Amount.StringFixed(2), tx.TxDate.Format("02.01.2006")))
		if tx.Description != "" {
			sb.WriteString(" — " + tx.Description)
		}
		sb.WriteString("\n")
	}
	return []Reply{textReply(strings.TrimRight(sb.String(), "\n"), MainKeyboard())}
}

// budgetStatus compares each limit with the spend derived from the ledger
// over the limit's current period window.
func (r *Router) budgetStatus(ctx context.Context, userID int64) []Reply {
	limits, err := r.budgets.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list budget limits")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}
	if len(limits) == 0 {
		return []Reply{textReply("💼 Лимиты бюджета не заданы.", MainKeyboard())}
	}

	now := time.Now()
	var sb strings.Builder
	sb.WriteString("💼 Бюджеты:\n")
	for _, l := range limits {
		from, to := l.Period.Window(now)
		spent, err := r.ledger.SumByCategory(ctx, userID, l.Category, l.Kind, from, to)
		if err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Str("category", l.Category).Msg("Failed to sum category spend")
			continue
		}
		mark := "✅"
		if spent.GreaterThan(l.Amount) {
			mark = "⚠️"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s): %s / %s руб.\n",
			mark, l.Category, periodLabel(l.Period), spent.StringFixed(2), l.Amount.StringFixed(2)))
	}
	return []Reply{textReply(strings.TrimRight(sb.String(), "\n"), MainKeyboard())}
}

// advanceExport handles the single range-selection step of the export flow
// and answers with a CSV document.
func (r *Router) advanceExport(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	if d.Step != StepRange {
		r.sessions.Clear(userID)
		return []Reply{textReply(msgUnknown, MainKeyboard())}
	}

	var from, to *time.Time
	now := time.Now()
	switch text {
	case BtnRangeWeek:
		start, end := models.PeriodWeek.Window(now)
		last := end.AddDate(0, 0, -1)
		from, to = &start, &last
	case BtnRangeMonth:
		start, end := models.PeriodMonth.Window(now)
		last := end.AddDate(0, 0, -1)
		from, to = &start, &last
	case BtnRangeAll:
		// Open-ended on both sides.
	default:
		return []Reply{textReply("❌ Выберите период из списка.", rangeKeyboard())}
	}
	r.sessions.Clear(userID)

	txs, err := r.ledger.ListByUser(ctx, userID, from, to, exportLimit)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list transactions for export")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}
	if len(txs) == 0 {
		return []Reply{textReply("Нет транзакций за выбранный период.", MainKeyboard())}
	}

	data, err := GenerateTransactionsCSV(txs)
	if err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to generate CSV export")
		return []Reply{textReply(msgQueryFailed, MainKeyboard())}
	}
	return []Reply{
		{Document: data, Filename: "transactions_" + now.Format("2006-01-02") + ".csv"},
		textReply(msgChooseOption, MainKeyboard()),
	}
}

// exportLimit caps one CSV export.
const exportLimit = 10000
