package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/assistant"
	"github.com/sangkips/printshop-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newCalculator(products ...*entity.Product) *CalculatorService {
	return NewCalculatorService(newFakeProductRepo(products...), NewFinancialConfigService(&fakeConfigRepo{}, 120))
}

func ptr[T any](v T) *T { return &v }

func TestCalculatorStickerUsesProductDefaults(t *testing.T) {
	p := &entity.Product{ID: uuid.New(), Name: "Vinil", SalePrice: 80, AvailableRollWidths: []float64{1.0, 1.5}}
	calc := newCalculator(p)

	res, err := calc.Sticker(context.Background(), &p.ID, &StickerRequest{UnitWidthCm: 5, UnitHeightCm: 5, TargetQuantity: 100})
	require.NoError(t, err)
	assert.Equal(t, 20, res.ColsPerRow)
	assert.InDelta(t, 80.0, res.UnitPrice, 1e-9)
	assert.InDelta(t, 20.0, res.Subtotal, 1e-9)

	res, err = calc.Sticker(context.Background(), &p.ID, &StickerRequest{UnitWidthCm: 5, UnitHeightCm: 5, TargetQuantity: 100, RollWidthM: ptr(1.5), PricePerM2: ptr(100.0)})
	require.NoError(t, err)
	assert.Equal(t, 30, res.ColsPerRow)
	assert.InDelta(t, 100.0, res.UnitPrice, 1e-9)
}

func TestCalculatorStickerValidation(t *testing.T) {
	calc := newCalculator()

	_, err := calc.Sticker(context.Background(), nil, &StickerRequest{Mode: "bulk", UnitWidthCm: 0, UnitHeightCm: 5, GapMm: -1})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.ReasonValidation, appErr.Reason)
	assert.GreaterOrEqual(t, len(appErr.Errors), 4)
}

func TestCalculatorLaserUsesConfiguredRate(t *testing.T) {
	calc := newCalculator()

	res, err := calc.Laser(context.Background(), nil, &LaserRequest{
		MachineTimeMinutes: 30,
		AreaWidthM:         0.5,
		AreaHeightM:        0.4,
		PricePerM2:         ptr(100.0),
		SetupFee:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.LaserModeCut, res.Mode)
	assert.InDelta(t, 60.0, res.TimeCost, 1e-9)
	assert.InDelta(t, 20.0, res.MaterialCost, 1e-9)
	assert.InDelta(t, 90.0, res.Total, 1e-9)
}

func TestCalculatorLaserPromotionalNeedsQuantity(t *testing.T) {
	calc := newCalculator()

	_, err := calc.Laser(context.Background(), nil, &LaserRequest{Mode: enum.LaserModePromotional, MachineTimeMinutes: 2})
	require.Error(t, err)
	assert.Equal(t, "laser.quantity", apperror.GetAppError(err).Errors[0].Field)
}

func TestCalculatorVehicleRejectsUnknownTier(t *testing.T) {
	calc := newCalculator()

	_, err := calc.Vehicle(context.Background(), nil, &VehicleRequest{
		Panels:     map[string]pricing.Panel{"capo": {Width: 1, Height: 1}},
		Selected:   []string{"capo"},
		Complexity: "Extrema",
		Material:   enum.MaterialStandard,
	})
	require.Error(t, err)
	assert.Equal(t, "vehicle.complexity", apperror.GetAppError(err).Errors[0].Field)
}

func TestBuildLineWrapNeedsAPricedPanel(t *testing.T) {
	p := &entity.Product{ID: uuid.New(), Name: "Envelopamento", Category: "Envelopamento", SalePrice: 100}
	calc := newCalculator(p)

	_, err := calc.BuildLine(p, entity.FinancialConfig{}, &LineRequest{
		ProductID: p.ID,
		Vehicle: &VehicleRequest{
			Panels:     map[string]pricing.Panel{"capo": {Width: 1, Height: 1}},
			Selected:   []string{"teto"},
			Complexity: enum.ComplexityLow,
			Material:   enum.MaterialStandard,
		},
	})
	require.Error(t, err)
	assert.Equal(t, "vehicle.selected", apperror.GetAppError(err).Errors[0].Field)

	item, err := calc.BuildLine(p, entity.FinancialConfig{}, &LineRequest{
		ProductID: p.ID,
		Vehicle: &VehicleRequest{
			Vehicle:    "Fiat Fiorino",
			Panels:     map[string]pricing.Panel{"capo": {Width: 1, Height: 2}},
			Selected:   []string{"capo"},
			Complexity: enum.ComplexityLow,
			Material:   enum.MaterialStandard,
		},
		Requirements: entity.Requirements{{Question: "Cor", Answer: "Azul"}},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.CalculatorModeAutomotive, item.Mode)
	assert.InDelta(t, 200.0, item.Subtotal, 1e-9)
	require.Len(t, item.Requirements, 1)
	wrap, ok := item.LabelData.Wrap()
	require.True(t, ok)
	assert.Equal(t, "Fiat Fiorino", wrap.Vehicle)
}

type failingEstimator struct{}

func (failingEstimator) Estimate(ctx context.Context, vehicleMake, model string, year int) (map[string]assistant.PanelSize, error) {
	return nil, errors.New("upstream unavailable")
}

func TestVehicleEstimateUnavailable(t *testing.T) {
	ctx := context.Background()

	_, err := NewVehicleService(assistant.NewNullEstimator()).Estimate(ctx, "Fiat", "Strada", 2022)
	assert.ErrorIs(t, err, apperror.ErrEstimateUnavailable)

	_, err = NewVehicleService(failingEstimator{}).Estimate(ctx, "Fiat", "Strada", 2022)
	assert.ErrorIs(t, err, apperror.ErrEstimateUnavailable)

	_, err = NewVehicleService(assistant.NewNullEstimator()).Estimate(ctx, "", "Strada", 2022)
	assert.Equal(t, apperror.ReasonValidation, apperror.GetAppError(err).Reason)
}

func TestVehicleEstimateFromCatalog(t *testing.T) {
	svc := NewVehicleService(assistant.NewCatalogEstimator(assistant.DefaultVehicleCatalog()))

	est, err := svc.Estimate(context.Background(), "Fiat", "Fiorino", 2020)
	require.NoError(t, err)
	assert.Equal(t, "Fiat Fiorino", est.Vehicle)
	assert.Len(t, est.Panels, 5)
	assert.Equal(t, []string{"capo", "lateral_d", "lateral_e", "porta_traseira", "teto"}, est.Selectable)
}

func storedQuote() *entity.Quote {
	return &entity.Quote{
		ID:           uuid.New(),
		Reference:    "Q-42",
		CustomerName: "Oficina <script>alert(1)</script>",
		Status:       enum.QuoteStatusSent,
		TotalAmount:  250,
		DownPayment:  125,
		DesignFee:    50,
		DeadlineDays: 4,
		Items: []entity.QuoteItem{
			{Position: 0, ProductName: "=Lona", Mode: enum.CalculatorModeStandard, Quantity: 2, UnitPrice: 50, Subtotal: 200},
		},
	}
}

func TestGetQuoteByReference(t *testing.T) {
	q := storedQuote()
	q.Reference = utils.NewQuoteReference()
	quotes := NewQuoteService(newFakeQuoteRepo(q), newFakeProductRepo(), newFakeCustomerRepo(), nil, nil, 0)
	ctx := context.Background()

	got, err := quotes.GetQuoteByReference(ctx, " "+strings.ToLower(q.Reference)+" ")
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	_, err = quotes.GetQuoteByReference(ctx, utils.NewQuoteReference())
	assert.Equal(t, apperror.ReasonNotFound, apperror.GetAppError(err).Reason)

	_, err = quotes.GetQuoteByReference(ctx, "Q-42")
	assert.Equal(t, apperror.ReasonValidation, apperror.GetAppError(err).Reason)
}

func TestPitchDegradesToErrorString(t *testing.T) {
	q := storedQuote()
	quotes := NewQuoteService(newFakeQuoteRepo(q), newFakeProductRepo(), newFakeCustomerRepo(), nil, nil, 0)

	pitch, err := NewPitchService(quotes, assistant.NewNullGenerator()).Generate(context.Background(), q.ID, "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, pitch.Error)
	assert.Empty(t, pitch.HTML)

	_, err = NewPitchService(quotes, assistant.NewNullGenerator()).Generate(context.Background(), uuid.New(), "Ana")
	assert.Equal(t, apperror.ReasonNotFound, apperror.GetAppError(err).Reason)
}

type panickingGenerator struct{}

func (panickingGenerator) Generate(context.Context, assistant.PitchRequest) (string, error) {
	panic("model client exploded")
}

func TestPitchRecoversGeneratorPanic(t *testing.T) {
	q := storedQuote()
	quotes := NewQuoteService(newFakeQuoteRepo(q), newFakeProductRepo(), newFakeCustomerRepo(), nil, nil, 0)

	var pitch *Pitch
	var err error
	require.NotPanics(t, func() {
		pitch, err = NewPitchService(quotes, panickingGenerator{}).Generate(context.Background(), q.ID, "Ana")
	})
	require.NoError(t, err)
	assert.Equal(t, pitchFailedMessage, pitch.Error)
	assert.Empty(t, pitch.Markdown)
}

func TestPitchRendersSanitizedHTML(t *testing.T) {
	q := storedQuote()
	quotes := NewQuoteService(newFakeQuoteRepo(q), newFakeProductRepo(), newFakeCustomerRepo(), nil, nil, 0)

	pitch, err := NewPitchService(quotes, assistant.NewTemplateGenerator()).Generate(context.Background(), q.ID, "Ana")
	require.NoError(t, err)
	assert.Empty(t, pitch.Error)
	assert.Contains(t, pitch.Markdown, "Oficina")
	assert.Contains(t, pitch.HTML, "<h2>")
	assert.False(t, strings.Contains(pitch.HTML, "<script"))
}

func TestQuoteTicketLayout(t *testing.T) {
	data, err := QuoteTicket(storedQuote())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Orçamento Q-42", title)

	product, err := f.GetCellValue(sheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "'=Lona", product)

	subtotal, err := f.GetCellValue(sheet, "H8")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(subtotal, "R$ "))
}

func TestExportQuoteFileName(t *testing.T) {
	q := storedQuote()
	quotes := NewQuoteService(newFakeQuoteRepo(q), newFakeProductRepo(), newFakeCustomerRepo(), nil, nil, 0)

	name, data, err := NewExportService(quotes).ExportQuote(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, "orcamento-Q-42.xlsx", name)
	assert.NotEmpty(t, data)
}
