package ledger

import (
	"html"
	"strings"
	"time"

	"fintrack/models"
)

// dateLayout is the accepted form for startDate/endDate query values.
const dateLayout = "2006-01-02"

// TransactionInput is the raw client payload for Add. Amount is a pointer so
// a missing field can be told apart from an explicit zero.
type TransactionInput struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
}

// Validate checks the required fields in order (description, amount, type)
// and returns a sanitized copy, or a *ValidationError naming the first
// offending field. The description is HTML-escaped so stored values carry no
// live markup when echoed back.
func (in TransactionInput) Validate() (TransactionInput, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return TransactionInput{}, invalidf("description", "description is required")
	}
	if in.Amount == nil {
		return TransactionInput{}, invalidf("amount", "amount is required")
	}
	switch in.Type {
	case models.TypeIncome, models.TypeExpense:
	case "":
		return TransactionInput{}, invalidf("type", "type is required")
	default:
		return TransactionInput{}, invalidf("type", "type must be one of %q or %q", models.TypeIncome, models.TypeExpense)
	}
	amount := *in.Amount
	return TransactionInput{
		Description: html.EscapeString(desc),
		Amount:      &amount,
		Type:        in.Type,
	}, nil
}

// Period is an inclusive creation-time range used to filter transactions.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod validates raw startDate/endDate query values. Both are
// required ISO-8601 dates. The end bound is pushed to the last instant of
// the end day so the range is inclusive of it. A start after the end is not
// rejected; such a period simply matches nothing.
func ParsePeriod(startRaw, endRaw string) (Period, error) {
	if startRaw == "" {
		return Period{}, invalidf("startDate", "startDate is required")
	}
	if endRaw == "" {
		return Period{}, invalidf("endDate", "endDate is required")
	}
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return Period{}, invalidf("startDate", "startDate must be a valid date (YYYY-MM-DD)")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return Period{}, invalidf("endDate", "endDate must be a valid date (YYYY-MM-DD)")
	}
	return Period{Start: start, End: end.AddDate(0, 0, 1).Add(-time.Nanosecond)}, nil
}

// Contains reports whether t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
