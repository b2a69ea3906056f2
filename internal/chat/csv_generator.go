package chat

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gitlab.com/vlkv/finance-bot/internal/models"
)

// GenerateTransactionsCSV generates a CSV file from a list of transactions.
func GenerateTransactionsCSV(txs []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Date", "Kind", "Amount", "Category", "Description"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range txs {
		row := []string{
			strconv.FormatInt(txs[i].ID, 10),
			txs[i].TxDate.Format("2006-01-02"),
			string(txs[i].Kind),
			txs[i].Amount.StringFixed(2),
			txs[i].Category,
			txs[i].Description,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
