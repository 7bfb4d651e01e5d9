// Package importer ingests bank-export CSV files of transactions for a user,
// either one-shot or by watching a drop directory.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"fintrack/models"
	"fintrack/pkg/ledger"
)

// Accepted layouts for the date column. Bank exports are inconsistent.
var dateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

var errMissingColumns = errors.New("csv missing required columns (date, description, amount)")

// ImportFile parses one CSV file and stores its rows as transactions owned
// by userID. The header row names the columns (case-insensitive); a "type"
// column is optional and, when absent, the sign of the amount decides:
// negative amounts become expenses. Rows that fail validation are skipped
// with a log line rather than aborting the file. Returns the number of rows
// imported.
func ImportFile(ctx context.Context, store ledger.Store, userID uint, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil // empty file
		}
		return 0, fmt.Errorf("read header of %s: %w", path, err)
	}
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	dateCol, ok := colIndex["date"]
	if !ok {
		dateCol, ok = colIndex["posting date"]
	}
	descCol, descOK := colIndex["description"]
	amountCol, amountOK := colIndex["amount"]
	if !ok || !descOK || !amountOK {
		return 0, errMissingColumns
	}
	typeCol, hasType := colIndex["type"]

	imported := 0
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read %s line %d: %w", path, line, err)
		}

		date, err := parseDate(safeGet(record, dateCol))
		if err != nil {
			log.Printf("import %s line %d: skipping, %v", path, line, err)
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(safeGet(record, amountCol)), 64)
		if err != nil {
			log.Printf("import %s line %d: skipping, bad amount %q", path, line, safeGet(record, amountCol))
			continue
		}
		txType := ""
		if hasType {
			txType = strings.ToLower(strings.TrimSpace(safeGet(record, typeCol)))
		}
		if txType == "" {
			if amount < 0 {
				txType = models.TypeExpense
			} else {
				txType = models.TypeIncome
			}
		}
		amount = math.Abs(amount)

		in := ledger.TransactionInput{
			Description: safeGet(record, descCol),
			Amount:      &amount,
			Type:        txType,
		}
		v, err := in.Validate()
		if err != nil {
			log.Printf("import %s line %d: skipping, %v", path, line, err)
			continue
		}
		t := &models.Transaction{
			Description: v.Description,
			Amount:      *v.Amount,
			Type:        v.Type,
			UserID:      userID,
			CreatedAt:   date, // keep the bank's date, not the import time
		}
		if err := store.Create(ctx, t); err != nil {
			return imported, fmt.Errorf("store %s line %d: %w", path, line, err)
		}
		imported++
	}
	return imported, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func safeGet(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
