package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/printshop-api/pkg/utils"
)

// templateGenerator renders a fixed pt-BR markdown pitch. It needs no
// external service and is deterministic for a given request.
type templateGenerator struct{}

func NewTemplateGenerator() SalesPitchGenerator {
	return templateGenerator{}
}

func (templateGenerator) Generate(ctx context.Context, req PitchRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return "", errors.New("assistant: customer name is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Proposta para %s\n\n", req.CustomerName)
	fmt.Fprintf(&b, "Olá, **%s**! Preparamos este orçamento pensando no seu projeto:\n\n", req.CustomerName)
	for _, it := range req.Items {
		fmt.Fprintf(&b, "- %dx %s: %s\n", it.Quantity, it.Name, utils.FormatBRL(it.Subtotal))
	}
	if req.DesignFee > 0 {
		fmt.Fprintf(&b, "- Criação de arte: %s\n", utils.FormatBRL(req.DesignFee))
	}
	if req.InstallFee > 0 {
		fmt.Fprintf(&b, "- Instalação: %s\n", utils.FormatBRL(req.InstallFee))
	}
	fmt.Fprintf(&b, "\n**Total: %s**\n\n", utils.FormatBRL(req.Total))
	if req.DeadlineDays > 0 {
		fmt.Fprintf(&b, "Prazo de produção: %d dias úteis após a aprovação.\n\n", req.DeadlineDays)
	}
	b.WriteString("Ficamos à disposição para ajustar o que for preciso.")
	if req.SalespersonName != "" {
		fmt.Fprintf(&b, "\n\n%s", req.SalespersonName)
	}
	return b.String(), nil
}
