package enum

import (
	"encoding/json"
	"fmt"
)

// QuoteStatus is the workflow state of a quote. Operators may move a quote
// to any status at any time; the sequence below is the usual path, not an
// enforced one.
type QuoteStatus string

const (
	QuoteStatusDraft                 QuoteStatus = "draft"
	QuoteStatusSent                  QuoteStatus = "sent"
	QuoteStatusNegotiating           QuoteStatus = "negotiating"
	QuoteStatusConfirmed             QuoteStatus = "confirmed"
	QuoteStatusProduction            QuoteStatus = "production"
	QuoteStatusPrePrint              QuoteStatus = "pre_print"
	QuoteStatusPrintingCutElectronic QuoteStatus = "printing_cut_electronic"
	QuoteStatusPrintingCutManual     QuoteStatus = "printing_cut_manual"
	QuoteStatusPrintingLamination    QuoteStatus = "printing_lamination"
	QuoteStatusPrintingFinishing     QuoteStatus = "printing_finishing"
	QuoteStatusFinished              QuoteStatus = "finished"
	QuoteStatusDelivered             QuoteStatus = "delivered"
	QuoteStatusRejected              QuoteStatus = "rejected"
)

// QuoteStatuses lists every status in pipeline order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusNegotiating,
	QuoteStatusConfirmed,
	QuoteStatusProduction,
	QuoteStatusPrePrint,
	QuoteStatusPrintingCutElectronic,
	QuoteStatusPrintingCutManual,
	QuoteStatusPrintingLamination,
	QuoteStatusPrintingFinishing,
	QuoteStatusFinished,
	QuoteStatusDelivered,
	QuoteStatusRejected,
}

// BoardColumn groups statuses on the production board.
type BoardColumn string

const (
	BoardColumnSales      BoardColumn = "sales"
	BoardColumnProduction BoardColumn = "production"
	BoardColumnDone       BoardColumn = "done"
)

// BoardColumns lists board columns in display order.
var BoardColumns = []BoardColumn{BoardColumnSales, BoardColumnProduction, BoardColumnDone}

func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status.
func (s QuoteStatus) IsValid() bool {
	for _, known := range QuoteStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal is true for delivered and rejected quotes.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusDelivered || s == QuoteStatusRejected
}

// BoardColumn returns the production board column for the status. The
// coarse production status lands in the same column as the printing_* steps.
func (s QuoteStatus) BoardColumn() BoardColumn {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusNegotiating, QuoteStatusConfirmed:
		return BoardColumnSales
	case QuoteStatusFinished, QuoteStatusDelivered, QuoteStatusRejected:
		return BoardColumnDone
	default:
		return BoardColumnProduction
	}
}

// ParseQuoteStatus validates a status string.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	st := QuoteStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown quote status %q", s)
	}
	return st, nil
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseQuoteStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
