//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gitlab.com/vlkv/finance-bot/internal/chat"
	"gitlab.com/vlkv/finance-bot/internal/models"
)

func main() {
	totals := []models.CategoryTotal{
		{Category: "Еда", Total: decimal.NewFromFloat(12500.50)},
		{Category: "Транспорт", Total: decimal.NewFromFloat(4300.00)},
		{Category: "Кофе", Total: decimal.NewFromFloat(2150.00)},
		{Category: "Прочее", Total: decimal.NewFromFloat(1800.00)},
	}

	chartData, err := chat.GenerateBreakdownChart(totals, "Расходы за 2026-08")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("graph.png", chartData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Wrote graph.png")
}
