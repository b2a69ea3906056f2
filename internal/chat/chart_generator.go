package chat

import (
	"fmt"

	"github.com/go-analyze/charts"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

// GenerateBreakdownChart creates a pie chart from (category, amount) pairs.
// Returns PNG image as bytes.
func GenerateBreakdownChart(totals []models.CategoryTotal, title string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, t := range totals {
		values = append(values, t.Total.InexactFloat64())
		names = append(names, t.Category)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
