package chat

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/vlkv/finance-bot/internal/logger"
	"gitlab.com/vlkv/finance-bot/internal/models"
	"gitlab.com/vlkv/finance-bot/internal/repository"
)

// startTransaction begins the transaction entry flow with the kind already
// chosen by the menu button.
func (r *Router) startTransaction(ctx context.Context, userID int64, kind models.Kind) []Reply {
	d := r.sessions.Start(userID, FlowTransaction, StepCategory)
	d.Kind = kind

	offered := r.offeredCategories(ctx, userID, kind)
	if kind == models.KindIncome {
		return []Reply{textReply("💸 Выберите категорию дохода", categoryKeyboard(offered))}
	}
	return []Reply{textReply("💳 Выберите категорию расхода", categoryKeyboard(offered))}
}

// advanceTransaction: category -> amount -> optional description -> commit.
func (r *Router) advanceTransaction(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Step {
	case StepCategory:
		if !contains(r.offeredCategories(ctx, userID, d.Kind), text) {
			return []Reply{textReply(msgBadCategory, categoryKeyboard(r.offeredCategories(ctx, userID, d.Kind)))}
		}
		d.Category = text
		d.Step = StepAmount
		return []Reply{textReply("💰 Введите сумму транзакции (например: 50000)", cancelKeyboard())}

	case StepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			return []Reply{textReply(amountErrorText(err), cancelKeyboard())}
		}
		d.Amount = amount
		d.Step = StepDescription
		return []Reply{textReply("📝 Добавьте описание или нажмите «➡️ Пропустить»", skipKeyboard())}

	case StepDescription:
		if text != BtnSkip {
			d.Description = text
		}
		return r.commitTransaction(ctx, userID, d)
	}

	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// commitTransaction hands the finished draft to the ledger in one call.
// The draft is cleared regardless of outcome; a failed commit is not retried.
func (r *Router) commitTransaction(ctx context.Context, userID int64, d *Draft) []Reply {
	tx := &models.Transaction{
		UserID:      userID,
		Kind:        d.Kind,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
	}
	r.sessions.Clear(userID)

	if err := r.ledger.Create(ctx, tx); err != nil {
		logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save transaction")
		return []Reply{textReply(msgStoreFailed, MainKeyboard())}
	}
	return []Reply{
		textReply("✅ Транзакция успешно добавлена!", nil),
		textReply(msgChooseOption, MainKeyboard()),
	}
}

// advanceAddCategory: kind -> name -> commit.
func (r *Router) advanceAddCategory(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Step {
	case StepKind:
		kind, ok := kindFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите «Доход» или «Расход».", kindKeyboard())}
		}
		d.Kind = kind
		d.Step = StepName
		return []Reply{textReply("✏️ Введите название новой категории:", cancelKeyboard())}

	case StepName:
		if text == "" || len([]rune(text)) > maxCategoryNameLength {
			return []Reply{textReply(fmt.Sprintf("❌ Название должно быть от 1 до %d символов.", maxCategoryNameLength), cancelKeyboard())}
		}
		if contains(models.DefaultCategories(d.Kind), text) {
			return []Reply{textReply("❌ Такая категория уже есть среди стандартных.", cancelKeyboard())}
		}
		kind := d.Kind
		r.sessions.Clear(userID)

		_, err := r.categories.Create(ctx, userID, text, kind)
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return []Reply{textReply("❌ Такая категория уже существует.", MainKeyboard())}
		}
		if err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create category")
			return []Reply{textReply(msgStoreFailed, MainKeyboard())}
		}
		return []Reply{textReply(fmt.Sprintf("✅ Категория «%s» добавлена!", text), MainKeyboard())}
	}

	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// advanceDeleteCategory: kind -> pick one of the user's own categories.
func (r *Router) advanceDeleteCategory(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Step {
	case StepKind:
		kind, ok := kindFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите «Доход» или «Расход».", kindKeyboard())}
		}
		userCats, err := r.categories.ListByUserAndKind(ctx, userID, kind)
		if err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list user categories")
			r.sessions.Clear(userID)
			return []Reply{textReply(msgStoreFailed, MainKeyboard())}
		}
		if len(userCats) == 0 {
			r.sessions.Clear(userID)
			return []Reply{textReply("У вас нет своих категорий этого типа.", MainKeyboard())}
		}
		names := make([]string, 0, len(userCats))
		for _, c := range userCats {
			names = append(names, c.Name)
		}
		d.Kind = kind
		d.Step = StepCategory
		return []Reply{textReply("🗑 Выберите категорию для удаления:", categoryKeyboard(names))}

	case StepCategory:
		kind := d.Kind
		r.sessions.Clear(userID)

		removed, err := r.categories.Delete(ctx, userID, text, kind)
		if err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to delete category")
			return []Reply{textReply(msgStoreFailed, MainKeyboard())}
		}
		if !removed {
			return []Reply{textReply("Категория не найдена.", MainKeyboard())}
		}
		return []Reply{textReply(fmt.Sprintf("🗑 Категория «%s» удалена.", text), MainKeyboard())}
	}

	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// advanceBudget: kind -> category -> period -> amount -> upsert.
func (r *Router) advanceBudget(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Step {
	case StepKind:
		kind, ok := kindFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите «Доход» или «Расход».", kindKeyboard())}
		}
		d.Kind = kind
		d.Step = StepCategory
		return []Reply{textReply("🎯 Выберите категорию:", categoryKeyboard(r.offeredCategories(ctx, userID, kind)))}

	case StepCategory:
		if !contains(r.offeredCategories(ctx, userID, d.Kind), text) {
			return []Reply{textReply(msgBadCategory, categoryKeyboard(r.offeredCategories(ctx, userID, d.Kind)))}
		}
		d.Category = text
		d.Step = StepPeriod
		return []Reply{textReply("📅 Выберите период лимита:", periodKeyboard())}

	case StepPeriod:
		period, ok := periodFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите период из списка.", periodKeyboard())}
		}
		d.Period = period
		d.Step = StepAmount
		return []Reply{textReply("💰 Введите сумму лимита:", cancelKeyboard())}

	case StepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			return []Reply{textReply(amountErrorText(err), cancelKeyboard())}
		}
		limit := &models.BudgetLimit{
			UserID:   userID,
			Category: d.Category,
			Kind:     d.Kind,
			Amount:   amount,
			Period:   d.Period,
		}
		r.sessions.Clear(userID)

		if err := r.budgets.Upsert(ctx, limit); err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to upsert budget limit")
			return []Reply{textReply(msgStoreFailed, MainKeyboard())}
		}
		return []Reply{textReply(fmt.Sprintf("✅ Лимит для «%s» сохранён: %s руб. (%s)",
			limit.Category, limit.Amount.StringFixed(2), periodLabel(limit.Period)), MainKeyboard())}
	}

	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// advanceRecurring: kind -> category -> amount -> frequency -> optional
// description -> create the template.
func (r *Router) advanceRecurring(ctx context.Context, userID int64, d *Draft, text string) []Reply {
	switch d.Step {
	case StepKind:
		kind, ok := kindFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите «Доход» или «Расход».", kindKeyboard())}
		}
		d.Kind = kind
		d.Step = StepCategory
		return []Reply{textReply("🔁 Выберите категорию:", categoryKeyboard(r.offeredCategories(ctx, userID, kind)))}

	case StepCategory:
		if !contains(r.offeredCategories(ctx, userID, d.Kind), text) {
			return []Reply{textReply(msgBadCategory, categoryKeyboard(r.offeredCategories(ctx, userID, d.Kind)))}
		}
		d.Category = text
		d.Step = StepAmount
		return []Reply{textReply("💰 Введите сумму:", cancelKeyboard())}

	case StepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			return []Reply{textReply(amountErrorText(err), cancelKeyboard())}
		}
		d.Amount = amount
		d.Step = StepFrequency
		return []Reply{textReply("🔁 Как часто повторять?", frequencyKeyboard())}

	case StepFrequency:
		freq, ok := frequencyFromButton(text)
		if !ok {
			return []Reply{textReply("❌ Выберите частоту из списка.", frequencyKeyboard())}
		}
		d.Frequency = freq
		d.Step = StepDescription
		return []Reply{textReply("📝 Добавьте описание или нажмите «➡️ Пропустить»", skipKeyboard())}

	case StepDescription:
		if text != BtnSkip {
			d.Description = text
		}
		tmpl := &models.RecurringTemplate{
			UserID:      userID,
			Kind:        d.Kind,
			Amount:      d.Amount,
			Category:    d.Category,
			Description: d.Description,
			Frequency:   d.Frequency,
		}
		r.sessions.Clear(userID)

		if err := r.recurring.Create(ctx, tmpl); err != nil {
			logger.Log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create recurring template")
			return []Reply{textReply(msgStoreFailed, MainKeyboard())}
		}
		return []Reply{textReply("✅ Регулярная операция создана! Первая запись появится при ближайшей обработке.", MainKeyboard())}
	}

	r.sessions.Clear(userID)
	return []Reply{textReply(msgUnknown, MainKeyboard())}
}

// maxCategoryNameLength bounds user category names.
const maxCategoryNameLength = 50

func amountErrorText(err error) string {
	if errors.Is(err, errNonPositiveAmount) {
		return msgNegAmount
	}
	return msgBadAmount
}

func periodLabel(p models.Period) string {
	switch p {
	case models.PeriodDay:
		return "день"
	case models.PeriodWeek:
		return "неделя"
	default:
		return "месяц"
	}
}
