package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

func TestTransactionFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("expense happy path with description", func(t *testing.T) {
		r, ledger, _, _, _ := newTestRouter()

		replies := r.HandleMessage(ctx, 1, BtnAddExpense)
		require.Contains(t, replies[0].Text, "категорию расхода")

		replies = r.HandleMessage(ctx, 1, "Еда")
		require.Contains(t, replies[0].Text, "сумму")

		replies = r.HandleMessage(ctx, 1, "250,50")
		require.Contains(t, replies[0].Text, "описание")

		replies = r.HandleMessage(ctx, 1, "обед")
		require.Equal(t, "✅ Транзакция успешно добавлена!", replies[0].Text)

		require.Nil(t, r.Sessions().Get(1))
		require.Len(t, ledger.txs, 1)
		tx := ledger.txs[0]
		require.Equal(t, int64(1), tx.UserID)
		require.Equal(t, models.KindExpense, tx.Kind)
		require.Equal(t, "Еда", tx.Category)
		require.True(t, tx.Amount.Equal(decimal.NewFromFloat(250.50)))
		require.Equal(t, "обед", tx.Description)
	})

	t.Run("income happy path with skipped description", func(t *testing.T) {
		r, ledger, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnAddIncome)
		r.HandleMessage(ctx, 1, "Зарплата")
		r.HandleMessage(ctx, 1, "100000")
		replies := r.HandleMessage(ctx, 1, BtnSkip)
		require.Equal(t, "✅ Транзакция успешно добавлена!", replies[0].Text)

		require.Len(t, ledger.txs, 1)
		require.Equal(t, models.KindIncome, ledger.txs[0].Kind)
		require.Empty(t, ledger.txs[0].Description)
	})

	t.Run("unknown category re-prompts without advancing", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnAddExpense)
		replies := r.HandleMessage(ctx, 1, "Ерунда")
		require.Equal(t, msgBadCategory, replies[0].Text)

		d := r.Sessions().Get(1)
		require.NotNil(t, d)
		require.Equal(t, StepCategory, d.Step)
		require.Empty(t, d.Category)
	})

	t.Run("user category is accepted", func(t *testing.T) {
		r, ledger, categories, _, _ := newTestRouter()
		_, err := categories.Create(ctx, 1, "Кофе", models.KindExpense)
		require.NoError(t, err)

		r.HandleMessage(ctx, 1, BtnAddExpense)
		r.HandleMessage(ctx, 1, "Кофе")
		r.HandleMessage(ctx, 1, "5")
		r.HandleMessage(ctx, 1, BtnSkip)

		require.Len(t, ledger.txs, 1)
		require.Equal(t, "Кофе", ledger.txs[0].Category)
	})

	t.Run("malformed amount keeps the draft in place", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnAddExpense)
		r.HandleMessage(ctx, 1, "Еда")
		replies := r.HandleMessage(ctx, 1, "abc")
		require.Equal(t, msgBadAmount, replies[0].Text)

		d := r.Sessions().Get(1)
		require.NotNil(t, d)
		require.Equal(t, StepAmount, d.Step)
		require.Equal(t, "Еда", d.Category)
		require.True(t, d.Amount.IsZero())
	})

	t.Run("negative amount re-prompts with its own message", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnAddExpense)
		r.HandleMessage(ctx, 1, "Еда")
		replies := r.HandleMessage(ctx, 1, "-5")
		require.Equal(t, msgNegAmount, replies[0].Text)
		require.Equal(t, StepAmount, r.Sessions().Get(1).Step)
	})

	t.Run("store failure clears the draft and reports", func(t *testing.T) {
		r, ledger, _, _, _ := newTestRouter()
		ledger.createErr = errors.New("connection lost")

		r.HandleMessage(ctx, 1, BtnAddExpense)
		r.HandleMessage(ctx, 1, "Еда")
		r.HandleMessage(ctx, 1, "100")
		replies := r.HandleMessage(ctx, 1, BtnSkip)

		require.Equal(t, msgStoreFailed, replies[0].Text)
		require.Nil(t, r.Sessions().Get(1))
	})
}

func TestAddCategoryFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		r, _, categories, _, _ := newTestRouter()

		replies := r.HandleMessage(ctx, 1, BtnNewCategory)
		require.Contains(t, replies[0].Text, "для дохода или расхода")

		replies = r.HandleMessage(ctx, 1, BtnKindExpense)
		require.Contains(t, replies[0].Text, "название")

		replies = r.HandleMessage(ctx, 1, "Кофе")
		require.Contains(t, replies[0].Text, "добавлена")

		require.Nil(t, r.Sessions().Get(1))
		cats, err := categories.ListByUserAndKind(ctx, 1, models.KindExpense)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		require.Equal(t, "Кофе", cats[0].Name)
	})

	t.Run("invalid kind re-prompts", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnNewCategory)
		replies := r.HandleMessage(ctx, 1, "не кнопка")
		require.Contains(t, replies[0].Text, "«Доход» или «Расход»")
		require.Equal(t, StepKind, r.Sessions().Get(1).Step)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnNewCategory)
		r.HandleMessage(ctx, 1, BtnKindExpense)

		long := make([]rune, maxCategoryNameLength+1)
		for i := range long {
			long[i] = 'я'
		}
		replies := r.HandleMessage(ctx, 1, string(long))
		require.Contains(t, replies[0].Text, "Название")
		require.Equal(t, StepName, r.Sessions().Get(1).Step)
	})

	t.Run("rejects default category name", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnNewCategory)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		replies := r.HandleMessage(ctx, 1, "Еда")
		require.Contains(t, replies[0].Text, "стандартных")
	})

	t.Run("duplicate reports and ends the flow", func(t *testing.T) {
		r, _, categories, _, _ := newTestRouter()
		_, err := categories.Create(ctx, 1, "Кофе", models.KindExpense)
		require.NoError(t, err)

		r.HandleMessage(ctx, 1, BtnNewCategory)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		replies := r.HandleMessage(ctx, 1, "Кофе")
		require.Contains(t, replies[0].Text, "уже существует")
		require.Nil(t, r.Sessions().Get(1))
	})
}

func TestDeleteCategoryFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		r, _, categories, _, _ := newTestRouter()
		_, err := categories.Create(ctx, 1, "Кофе", models.KindExpense)
		require.NoError(t, err)

		r.HandleMessage(ctx, 1, BtnDeleteCategory)
		replies := r.HandleMessage(ctx, 1, BtnKindExpense)
		require.Contains(t, replies[0].Text, "для удаления")
		require.Equal(t, [][]string{{"Кофе"}, {BtnCancel}}, replies[0].Keyboard)

		replies = r.HandleMessage(ctx, 1, "Кофе")
		require.Contains(t, replies[0].Text, "удалена")

		cats, err := categories.ListByUserAndKind(ctx, 1, models.KindExpense)
		require.NoError(t, err)
		require.Empty(t, cats)
	})

	t.Run("no own categories ends the flow", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnDeleteCategory)
		replies := r.HandleMessage(ctx, 1, BtnKindExpense)
		require.Contains(t, replies[0].Text, "нет своих категорий")
		require.Nil(t, r.Sessions().Get(1))
	})

	t.Run("missing category reports not found", func(t *testing.T) {
		r, _, categories, _, _ := newTestRouter()
		_, err := categories.Create(ctx, 1, "Кофе", models.KindExpense)
		require.NoError(t, err)

		r.HandleMessage(ctx, 1, BtnDeleteCategory)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		replies := r.HandleMessage(ctx, 1, "Аптека")
		require.Equal(t, "Категория не найдена.", replies[0].Text)
	})
}

func TestBudgetFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path creates the limit", func(t *testing.T) {
		r, _, _, budgets, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnBudgetLimit)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		r.HandleMessage(ctx, 1, "Еда")
		replies := r.HandleMessage(ctx, 1, BtnPeriodMonth)
		require.Contains(t, replies[0].Text, "сумму лимита")

		replies = r.HandleMessage(ctx, 1, "500")
		require.Contains(t, replies[0].Text, "Лимит для «Еда» сохранён")

		require.Nil(t, r.Sessions().Get(1))
		require.Len(t, budgets.limits, 1)
		l := budgets.limits[0]
		require.Equal(t, models.PeriodMonth, l.Period)
		require.True(t, l.Amount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("re-setting replaces the amount", func(t *testing.T) {
		r, _, _, budgets, _ := newTestRouter()

		for _, amount := range []string{"500", "700"} {
			r.HandleMessage(ctx, 1, BtnBudgetLimit)
			r.HandleMessage(ctx, 1, BtnKindExpense)
			r.HandleMessage(ctx, 1, "Еда")
			r.HandleMessage(ctx, 1, BtnPeriodMonth)
			r.HandleMessage(ctx, 1, amount)
		}

		require.Len(t, budgets.limits, 1)
		require.True(t, budgets.limits[0].Amount.Equal(decimal.NewFromInt(700)))
	})

	t.Run("invalid period re-prompts", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnBudgetLimit)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		r.HandleMessage(ctx, 1, "Еда")
		replies := r.HandleMessage(ctx, 1, "Квартал")
		require.Contains(t, replies[0].Text, "период")
		require.Equal(t, StepPeriod, r.Sessions().Get(1).Step)
	})
}

func TestRecurringFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path creates the template", func(t *testing.T) {
		r, _, _, _, recurring := newTestRouter()

		r.HandleMessage(ctx, 1, BtnRecurring)
		r.HandleMessage(ctx, 1, BtnKindIncome)
		r.HandleMessage(ctx, 1, "Зарплата")
		r.HandleMessage(ctx, 1, "100000")
		replies := r.HandleMessage(ctx, 1, BtnFreqMonthly)
		require.Contains(t, replies[0].Text, "описание")

		replies = r.HandleMessage(ctx, 1, "аванс")
		require.Contains(t, replies[0].Text, "Регулярная операция создана")

		require.Nil(t, r.Sessions().Get(1))
		require.Len(t, recurring.templates, 1)
		tmpl := recurring.templates[0]
		require.Equal(t, models.KindIncome, tmpl.Kind)
		require.Equal(t, models.FrequencyMonthly, tmpl.Frequency)
		require.Equal(t, "аванс", tmpl.Description)
		require.True(t, tmpl.IsActive)
	})

	t.Run("invalid frequency re-prompts", func(t *testing.T) {
		r, _, _, _, _ := newTestRouter()

		r.HandleMessage(ctx, 1, BtnRecurring)
		r.HandleMessage(ctx, 1, BtnKindExpense)
		r.HandleMessage(ctx, 1, "Еда")
		r.HandleMessage(ctx, 1, "50")
		replies := r.HandleMessage(ctx, 1, "Иногда")
		require.Contains(t, replies[0].Text, "частоту")
		require.Equal(t, StepFrequency, r.Sessions().Get(1).Step)
	})
}
