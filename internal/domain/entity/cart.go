package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/pkg/apperror"
)

// Cart is an in-progress quote. It is never stored; NewQuote freezes it.
type Cart struct {
	CustomerID *uuid.UUID
	DesignFee  float64
	InstallFee float64
	items      []QuoteItem
}

func NewCart(customerID *uuid.UUID, designFee, installFee float64) *Cart {
	return &Cart{CustomerID: customerID, DesignFee: designFee, InstallFee: installFee}
}

// AddItem appends a line. Sticker lines that yield no labels and lines with
// a non-finite price are refused.
func (c *Cart) AddItem(item QuoteItem) error {
	if s, ok := item.LabelData.Sticker(); ok && (s.TotalLabels <= 0 || s.ColsPerRow <= 0) {
		return apperror.NewFieldError("label_data", "label does not fit the roll or yields no units")
	}
	if !finite(item.UnitPrice) || !finite(item.Subtotal) {
		return apperror.NewFieldError("subtotal", "price is not a finite number")
	}
	item.Position = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// RemoveItem drops the line at index and renumbers the rest.
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.items) {
		return apperror.NewNotFoundError("Cart item")
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	for i := range c.items {
		c.items[i].Position = i
	}
	return nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []QuoteItem {
	out := make([]QuoteItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) ItemsSubtotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Subtotal
	}
	return sum
}

// Total is the line subtotals plus design and install fees.
func (c *Cart) Total() float64 {
	return c.ItemsSubtotal() + c.DesignFee + c.InstallFee
}

func (c *Cart) ProductionCost() float64 {
	return productionCost(c.items)
}

// Snapshot deep-copies every line and checks that its label data and
// requirements serialize cleanly.
func (c *Cart) Snapshot() ([]QuoteItem, error) {
	out := make([]QuoteItem, len(c.items))
	for i, it := range c.items {
		cp := it.Clone()
		cp.Position = i
		if _, err := json.Marshal(cp.LabelData); err != nil {
			return nil, fmt.Errorf("item %d label data: %w: %w", i, apperror.ErrSnapshotInvalid, err)
		}
		if _, err := json.Marshal(cp.Requirements); err != nil {
			return nil, fmt.Errorf("item %d requirements: %w: %w", i, apperror.ErrSnapshotInvalid, err)
		}
		out[i] = cp
	}
	return out, nil
}

// NewQuote freezes the cart into a draft quote. The customer must be set.
func (c *Cart) NewQuote(reference string, date time.Time, deadlineDays int) (*Quote, error) {
	if c.CustomerID == nil || *c.CustomerID == uuid.Nil {
		return nil, apperror.ErrNoCustomerSelected
	}
	items, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	total := c.Total()
	return &Quote{
		ID:           uuid.New(),
		Reference:    reference,
		Date:         date,
		CustomerID:   *c.CustomerID,
		Items:        items,
		TotalAmount:  total,
		DownPayment:  total / 2,
		DesignFee:    c.DesignFee,
		InstallFee:   c.InstallFee,
		Status:       enum.QuoteStatusDraft,
		DeadlineDays: deadlineDays,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
