package chat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

func TestGenerateBreakdownChart(t *testing.T) {
	tests := []struct {
		name        string
		totals      []models.CategoryTotal
		expectError bool
	}{
		{
			name: "multiple categories",
			totals: []models.CategoryTotal{
				{Category: "Еда", Total: decimal.NewFromInt(50)},
				{Category: "Транспорт", Total: decimal.NewFromInt(30)},
				{Category: "Прочее", Total: decimal.NewFromInt(20)},
			},
			expectError: false,
		},
		{
			name: "single category",
			totals: []models.CategoryTotal{
				{Category: "Еда", Total: decimal.NewFromInt(100)},
			},
			expectError: false,
		},
		{
			name:        "no data",
			totals:      nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := GenerateBreakdownChart(tt.totals, "Расходы за 2026-08")
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, png)
			// PNG magic bytes.
			require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
		})
	}
}
