package entity

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
)

func bannerProduct() *Product {
	return &Product{
		ID:        uuid.New(),
		Name:      "Lona 440g",
		UnitType:  enum.UnitTypeSquareMeter,
		CostPrice: 18,
		SalePrice: 60,
	}
}

func stickerLine(t *testing.T) QuoteItem {
	t.Helper()
	in := pricing.AreaYieldInput{
		Mode:           enum.StickerModeQuantity,
		UnitWidthCm:    5,
		UnitHeightCm:   5,
		GapMm:          3,
		RollWidthM:     1.2,
		PricePerM2:     100,
		TargetQuantity: 100,
	}
	return NewStickerItem(&Product{ID: uuid.New(), Name: "Vinil"}, in, pricing.ComputeAreaYield(in))
}

func TestCartTotalMatchesIndependentSum(t *testing.T) {
	cart := NewCart(nil, 35, 120)
	items := []QuoteItem{
		NewStandardItem(bannerProduct(), 2, 1.5, 0.8),
		stickerLine(t),
		NewStandardItem(&Product{ID: uuid.New(), UnitType: enum.UnitTypeUnit, SalePrice: 7.5}, 40, 0, 0),
	}
	for _, it := range items {
		require.NoError(t, cart.AddItem(it))
	}

	var want float64
	for _, it := range cart.Items() {
		want += it.Subtotal
		assert.InDelta(t, it.Subtotal, it.UnitPrice*it.BillableQuantity(), 1e-9)
	}
	want += 35 + 120
	assert.InDelta(t, want, cart.Total(), 1e-9)
	assert.InDelta(t, 144+31.8+300+155, cart.Total(), 1e-6)
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := NewCart(nil, 0, 0)
	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		require.NoError(t, cart.AddItem(QuoteItem{ProductName: n, UnitPrice: 1, Subtotal: 1}))
	}
	require.NoError(t, cart.RemoveItem(1))
	require.Error(t, cart.RemoveItem(7))

	items := cart.Items()
	require.Len(t, items, 3)
	for i, want := range []string{"a", "c", "d"} {
		assert.Equal(t, want, items[i].ProductName)
		assert.Equal(t, i, items[i].Position)
	}
}

func TestCartRejectsZeroYieldSticker(t *testing.T) {
	in := pricing.AreaYieldInput{Mode: enum.StickerModeQuantity, UnitWidthCm: 130, UnitHeightCm: 5, RollWidthM: 1.2, PricePerM2: 100, TargetQuantity: 10}
	item := NewStickerItem(&Product{ID: uuid.New()}, in, pricing.ComputeAreaYield(in))

	cart := NewCart(nil, 0, 0)
	err := cart.AddItem(item)
	require.Error(t, err)
	assert.Equal(t, apperror.ReasonValidation, apperror.GetAppError(err).Reason)
	assert.Zero(t, cart.Len())
}

func TestCartRejectsNonFinitePrice(t *testing.T) {
	cart := NewCart(nil, 0, 0)
	assert.Error(t, cart.AddItem(QuoteItem{UnitPrice: math.Inf(1), Subtotal: 1}))
	assert.Error(t, cart.AddItem(QuoteItem{UnitPrice: 1, Subtotal: math.NaN()}))
}

func TestNewQuoteRequiresCustomer(t *testing.T) {
	cart := NewCart(nil, 10, 0)
	_, err := cart.NewQuote("ORC-1", time.Now(), 5)
	assert.ErrorIs(t, err, apperror.ErrNoCustomerSelected)

	nilID := uuid.Nil
	cart.CustomerID = &nilID
	_, err = cart.NewQuote("ORC-1", time.Now(), 5)
	assert.ErrorIs(t, err, apperror.ErrNoCustomerSelected)
}

func TestNewQuoteEmptyCartIsDraftWithFees(t *testing.T) {
	customer := uuid.New()
	cart := NewCart(&customer, 50, 30)

	q, err := cart.NewQuote("ORC-2", time.Now(), 7)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusDraft, q.Status)
	assert.Equal(t, 80.0, q.TotalAmount)
	assert.Equal(t, 40.0, q.DownPayment)
	assert.Equal(t, customer, q.CustomerID)
	assert.Empty(t, q.Items)
	assert.NotEqual(t, uuid.Nil, q.ID)
}

func TestNewQuoteSnapshotsAreDeepCopies(t *testing.T) {
	customer := uuid.New()
	cart := NewCart(&customer, 0, 0)
	wrap := QuoteItem{
		UnitPrice: 140,
		Subtotal:  263.55,
		LabelData: LabelData{Label: &WrapLabel{Parts: []string{"capo", "teto"}, AreaM2: 1.8825}},
		Requirements: Requirements{
			{Question: "Remover adesivo antigo?", Answer: "sim"},
		},
	}
	require.NoError(t, cart.AddItem(wrap))

	q, err := cart.NewQuote("ORC-3", time.Now(), 0)
	require.NoError(t, err)

	w, ok := wrap.LabelData.Wrap()
	require.True(t, ok)
	w.Parts[0] = "changed"
	wrap.Requirements[0].Answer = "não"

	stored, ok := q.Items[0].LabelData.Wrap()
	require.True(t, ok)
	assert.Equal(t, []string{"capo", "teto"}, stored.Parts)
	assert.Equal(t, "sim", q.Items[0].Requirements[0].Answer)
	assert.InDelta(t, 263.55, q.TotalAmount, 1e-9)
}

func TestNewQuoteRejectsNonSerializableLabel(t *testing.T) {
	customer := uuid.New()
	cart := NewCart(&customer, 0, 0)
	require.NoError(t, cart.AddItem(QuoteItem{
		UnitPrice: 10,
		Subtotal:  10,
		LabelData: LabelData{Label: &LaserLabel{Mode: enum.LaserModeCut, MachineTimeMinutes: math.NaN()}},
	}))

	_, err := cart.NewQuote("ORC-4", time.Now(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrSnapshotInvalid))
}

func TestLabelDataJSONCarriesDiscriminator(t *testing.T) {
	d := LabelData{Label: &StickerLabel{Mode: enum.StickerModeQuantity, TotalLabels: 100, AreaM2: 0.318}}
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var head map[string]any
	require.NoError(t, json.Unmarshal(raw, &head))
	assert.Equal(t, "sticker", head["type"])
	assert.Equal(t, float64(100), head["total_labels"])

	var back LabelData
	require.NoError(t, json.Unmarshal(raw, &back))
	s, ok := back.Sticker()
	require.True(t, ok)
	assert.Equal(t, 100, s.TotalLabels)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"dtf"}`), &back))
}

func TestLabelDataValueScan(t *testing.T) {
	v, err := LabelData{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d := LabelData{Label: &LaserLabel{Mode: enum.LaserModeEngrave, Material: "MDF 3mm", MachineTimeMinutes: 12, SetupFee: 20}}
	v, err = d.Value()
	require.NoError(t, err)

	var scanned LabelData
	require.NoError(t, scanned.Scan(v))
	l, ok := scanned.Laser()
	require.True(t, ok)
	assert.Equal(t, "MDF 3mm", l.Material)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
}

func TestLaserItemBillsOnce(t *testing.T) {
	in := pricing.MachineCostInput{Mode: enum.LaserModeCut, MachineTimeMinutes: 10, MachineHourRate: 120, AreaWidthM: 1, AreaHeightM: 0.5, PricePerM2: 50, SetupFee: 20}
	item := NewLaserItem(&Product{ID: uuid.New(), CostPrice: 20}, in, pricing.ComputeMachineCost(in))

	assert.InDelta(t, 65.0, item.Subtotal, 1e-9)
	assert.InDelta(t, 1.0, item.BillableQuantity(), 1e-9)
	assert.InDelta(t, 10.0, item.Cost(), 1e-9)
}

func TestQuoteItemBillableQuantityZeroPrice(t *testing.T) {
	in := pricing.AreaYieldInput{
		Mode:           enum.StickerModeQuantity,
		UnitWidthCm:    5,
		UnitHeightCm:   5,
		GapMm:          3,
		RollWidthM:     1.2,
		PricePerM2:     0,
		TargetQuantity: 100,
	}
	res := pricing.ComputeAreaYield(in)
	require.Greater(t, res.FinalAreaM2, 0.0)

	item := NewStickerItem(&Product{ID: uuid.New(), Name: "Vinil", CostPrice: 30}, in, res)
	assert.Equal(t, 0.0, item.Subtotal)
	assert.InDelta(t, res.FinalAreaM2, item.BillableQuantity(), 1e-9)
	assert.InDelta(t, 30*res.FinalAreaM2, item.Cost(), 1e-9)

	cart := NewCart(nil, 0, 0)
	require.NoError(t, cart.AddItem(item))
	assert.InDelta(t, 30*res.FinalAreaM2, cart.ProductionCost(), 1e-9)

	legacy := QuoteItem{UnitPrice: 0, Subtotal: 0, UnitCost: 5}
	assert.Equal(t, 0.0, legacy.BillableQuantity())
}

func TestPromotionalLaserItemIsOneFixedPriceLine(t *testing.T) {
	in := pricing.MachineCostInput{
		Mode:               enum.LaserModePromotional,
		MachineTimeMinutes: 1,
		MachineHourRate:    120,
		Quantity:           50,
		SupplyProduct:      true,
		BaseCost:           4,
		SuggestedMarkup:    2,
	}
	res := pricing.ComputeMachineCost(in)
	item := NewLaserItem(&Product{ID: uuid.New(), Name: "Caneta"}, in, res)

	assert.Equal(t, 1, item.Quantity)
	assert.InDelta(t, item.Subtotal, float64(item.Quantity)*item.UnitPrice, 1e-9)
	assert.InDelta(t, 200.0, item.Cost(), 1e-9)
	l, ok := item.LabelData.Laser()
	require.True(t, ok)
	assert.Equal(t, 50, l.Quantity)
}

func TestFinancialConfigDerivedValues(t *testing.T) {
	cfg := FinancialConfig{
		ProductiveHoursPerMonth: 160,
		TargetProfitMargin:      20,
		TaxPercent:              6,
		CommissionPercent:       3,
		FixedCosts: []FixedCost{
			{Name: "Aluguel", MonthlyAmount: 3000},
			{Name: "Energia", MonthlyAmount: 900},
		},
		Equipment: []Equipment{
			{Name: "Plotter", PurchaseValue: 36000, UsefulLifeMonths: 60},
			{Name: "Doação", PurchaseValue: 5000, UsefulLifeMonths: 0},
		},
	}

	assert.Equal(t, 3900.0, cfg.TotalFixedCosts())
	assert.Equal(t, 600.0, cfg.MonthlyDepreciation())
	assert.InDelta(t, 28.125, cfg.CostPerHour(), 1e-9)
	assert.Equal(t, pricing.Rates{TargetProfitMargin: 20, TaxPercent: 6, CommissionPercent: 3}, cfg.Rates())
	assert.Equal(t, 120.0, cfg.EffectiveMachineHourRate(120))

	cfg.MachineHourRate = 90
	assert.Equal(t, 90.0, cfg.EffectiveMachineHourRate(120))
}

func TestCartIndicators(t *testing.T) {
	customer := uuid.New()
	cart := NewCart(&customer, 0, 0)
	require.NoError(t, cart.AddItem(NewStandardItem(bannerProduct(), 1, 2, 1)))

	ind := pricing.ComputeIndicators(cart, pricing.Rates{TargetProfitMargin: 20, TaxPercent: 10})
	assert.InDelta(t, 120.0, ind.Revenue, 1e-9)
	assert.InDelta(t, 36.0, ind.ProductionCost, 1e-9)
	assert.InDelta(t, 72.0, ind.ProfitAmount, 1e-9)
	assert.InDelta(t, 60.0, ind.EffectiveMarginPercent, 1e-9)
}
