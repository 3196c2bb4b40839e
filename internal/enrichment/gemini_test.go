package enrichment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
)

type scriptedClient struct {
	calls     int
	model     string
	responses []*generativelanguage.GenerateContentResponse
	errs      []error
}

func (c *scriptedClient) GenerateContent(ctx context.Context, model string, req *generativelanguage.GenerateContentRequest) (*generativelanguage.GenerateContentResponse, error) {
	i := c.calls
	c.calls++
	c.model = model
	return c.responses[i], c.errs[i]
}

func textResponse(text string) *generativelanguage.GenerateContentResponse {
	return &generativelanguage.GenerateContentResponse{
		Candidates: []*generativelanguage.Candidate{{
			Content: &generativelanguage.Content{Parts: []*generativelanguage.Part{{Text: text}}},
		}},
	}
}

func newTestGenerator(client contentGenerator, retries int) *GeminiGenerator {
	g := newGeminiGenerator(client, GeminiConfig{Model: "gemini-3-flash-preview", MaxRetries: retries})
	g.initDelay = time.Millisecond
	return g
}

func TestGeminiGenerator_Success(t *testing.T) {
	client := &scriptedClient{
		responses: []*generativelanguage.GenerateContentResponse{textResponse("vibes are high")},
		errs:      []error{nil},
	}
	text, err := newTestGenerator(client, 3).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "vibes are high", text)
	assert.Equal(t, "models/gemini-3-flash-preview", client.model)
}

func TestGeminiGenerator_RetriesRateLimit(t *testing.T) {
	client := &scriptedClient{
		responses: []*generativelanguage.GenerateContentResponse{nil, nil, textResponse("ok")},
		errs: []error{
			&googleapi.Error{Code: http.StatusTooManyRequests},
			&googleapi.Error{Code: http.StatusServiceUnavailable},
			nil,
		},
	}
	text, err := newTestGenerator(client, 3).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, client.calls)
}

func TestGeminiGenerator_ClientErrorNotRetried(t *testing.T) {
	client := &scriptedClient{
		responses: []*generativelanguage.GenerateContentResponse{nil},
		errs:      []error{&googleapi.Error{Code: http.StatusBadRequest}},
	}
	_, err := newTestGenerator(client, 3).Generate(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestGeminiGenerator_GivesUp(t *testing.T) {
	boom := errors.New("connection reset")
	client := &scriptedClient{
		responses: []*generativelanguage.GenerateContentResponse{nil, nil},
		errs:      []error{boom, boom},
	}
	_, err := newTestGenerator(client, 2).Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, client.calls)
}

func TestGeminiGenerator_EmptyCandidates(t *testing.T) {
	client := &scriptedClient{
		responses: []*generativelanguage.GenerateContentResponse{{}},
		errs:      []error{nil},
	}
	text, err := newTestGenerator(client, 1).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), GeminiConfig{Model: "m"})
	assert.Error(t, err)
}
