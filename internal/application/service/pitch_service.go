package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sangkips/printshop-api/pkg/assistant"
	"github.com/sangkips/printshop-api/pkg/logger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// pitchFailedMessage is returned in place of a pitch when generation fails.
const pitchFailedMessage = "Não foi possível gerar a mensagem de venda agora. Tente novamente."

// Pitch is a generated sales message. Error is set instead of failing the
// request when the generator is unavailable.
type Pitch struct {
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PitchService writes sales messages for stored quotes
type PitchService struct {
	quoteService *QuoteService
	generator    assistant.SalesPitchGenerator
	markdown     goldmark.Markdown
	policy       *bluemonday.Policy
}

// NewPitchService creates a new pitch service
func NewPitchService(quoteService *QuoteService, generator assistant.SalesPitchGenerator) *PitchService {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &PitchService{
		quoteService: quoteService,
		generator:    generator,
		markdown:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:       policy,
	}
}

// Generate writes a pitch for quote id. Only a missing quote is an error;
// generator and rendering failures come back in Pitch.Error.
func (s *PitchService) Generate(ctx context.Context, id uuid.UUID, salespersonName string) (*Pitch, error) {
	quote, err := s.quoteService.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	req := assistant.PitchRequest{
		CustomerName:    quote.CustomerName,
		Total:           quote.TotalAmount,
		DesignFee:       quote.DesignFee,
		InstallFee:      quote.InstallFee,
		DeadlineDays:    quote.DeadlineDays,
		SalespersonName: salespersonName,
	}
	for _, it := range quote.Items {
		req.Items = append(req.Items, assistant.PitchItem{
			Name:     it.ProductName,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}

	log := logger.FromContext(ctx).With(zap.String("quote_id", id.String()))

	md, err := s.generate(ctx, req)
	if err != nil {
		log.Warn("sales pitch generation failed", zap.Error(err))
		return &Pitch{Error: pitchFailedMessage}, nil
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md), &buf); err != nil {
		log.Warn("sales pitch rendering failed", zap.Error(err))
		return &Pitch{Markdown: md, Error: pitchFailedMessage}, nil
	}

	return &Pitch{
		Markdown: md,
		HTML:     s.policy.Sanitize(buf.String()),
	}, nil
}

// generate calls the generator, turning a panic into an error.
func (s *PitchService) generate(ctx context.Context, req assistant.PitchRequest) (md string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sales pitch generator panicked: %v", r)
		}
	}()
	return s.generator.Generate(ctx, req)
}
