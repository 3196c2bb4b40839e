package enrichment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"nexuscore-backend/internal/logger"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const geminiInitDelay = 500 * time.Millisecond

type GeminiConfig struct {
	APIKey     string
	Model      string
	Endpoint   string // empty for the public endpoint
	MaxRetries int
}

// contentGenerator is the slice of the generated client the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, req *generativelanguage.GenerateContentRequest) (*generativelanguage.GenerateContentResponse, error)
}

type modelsClient struct {
	models *generativelanguage.ModelsService
}

func (c modelsClient) GenerateContent(ctx context.Context, model string, req *generativelanguage.GenerateContentRequest) (*generativelanguage.GenerateContentResponse, error) {
	return c.models.GenerateContent(model, req).Context(ctx).Do()
}

// GeminiGenerator calls the Generative Language API with retry on rate
// limiting and server errors.
type GeminiGenerator struct {
	client     contentGenerator
	model      string
	maxRetries int
	initDelay  time.Duration
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create generative language client: %w", err)
	}
	return newGeminiGenerator(modelsClient{models: svc.Models}, cfg), nil
}

func newGeminiGenerator(client contentGenerator, cfg GeminiConfig) *GeminiGenerator {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	model := cfg.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return &GeminiGenerator{client: client, model: model, maxRetries: retries, initDelay: geminiInitDelay}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
	}

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * g.initDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		logger.ExternalServiceCall("gemini", "GenerateContent", "model", g.model, "attempt", attempt+1)
		resp, err := g.client.GenerateContent(ctx, g.model, req)
		logger.ExternalServiceResult("gemini", "GenerateContent", err, "model", g.model)
		if err != nil {
			lastErr = err
			if retryable(err) && ctx.Err() == nil {
				continue
			}
			return "", err
		}
		return responseText(resp), nil
	}
	return "", fmt.Errorf("max retries (%d) exceeded: %w", g.maxRetries, lastErr)
}

func retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	// transport level failure
	return true
}

func responseText(resp *generativelanguage.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
