package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	est, gen, err := NewFromConfig("none")
	require.NoError(t, err)

	panels, err := est.Estimate(context.Background(), "Fiat", "Strada", 2024)
	assert.NoError(t, err)
	assert.Nil(t, panels)

	_, err = gen.Generate(context.Background(), PitchRequest{CustomerName: "X"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = NewFromConfig("openai")
	assert.Error(t, err)
}

func TestCatalogEstimator(t *testing.T) {
	est := NewCatalogEstimator(DefaultVehicleCatalog())

	panels, err := est.Estimate(context.Background(), "  FIAT ", "strada", 2022)
	require.NoError(t, err)
	require.NotNil(t, panels)
	assert.Equal(t, PanelSize{W: 1.35, H: 0.95}, panels["capo"])

	panels["capo"] = PanelSize{}
	again, err := est.Estimate(context.Background(), "fiat", "strada", 2022)
	require.NoError(t, err)
	assert.Equal(t, 1.35, again["capo"].W)

	unknown, err := est.Estimate(context.Background(), "Tesla", "Cybertruck", 2025)
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestTemplateGenerator(t *testing.T) {
	gen := NewTemplateGenerator()
	text, err := gen.Generate(context.Background(), PitchRequest{
		CustomerName:    "Padaria Central",
		Items:           []PitchItem{{Name: "Adesivo vitrine", Quantity: 1, Subtotal: 180}},
		Total:           230,
		DesignFee:       50,
		DeadlineDays:    5,
		SalespersonName: "Equipe Comercial",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "## Proposta para Padaria Central")
	assert.Contains(t, text, "Adesivo vitrine")
	assert.Contains(t, text, "5 dias úteis")
	assert.Contains(t, text, "Equipe Comercial")

	_, err = gen.Generate(context.Background(), PitchRequest{})
	assert.Error(t, err)
}
