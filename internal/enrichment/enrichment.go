// Package enrichment fetches flavor text from a generative text model.
// Every request kind carries its own fallback, so callers always get text
// back and never see a failure.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/logger"
)

type Kind string

const (
	KindCommunityInsight   Kind = "COMMUNITY_INSIGHT"
	KindMemberAudit        Kind = "MEMBER_AUDIT"
	KindOwnershipManifesto Kind = "OWNERSHIP_MANIFESTO"
	KindMarketingCopy      Kind = "MARKETING_COPY"
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recorder observes the outcome of each request. Implemented by metrics.
type Recorder interface {
	Enrichment(kind, outcome string)
}

// Request is one enrichment fetch. A non-empty Immediate is returned
// as-is without calling the generator.
type Request struct {
	Kind      Kind
	Prompt    string
	Immediate string
}

// fallback holds the text used when the model answers with nothing and the
// text used when the call fails outright.
type fallback struct {
	Empty   string
	Failure string
}

var fallbacks = map[Kind]fallback{
	KindCommunityInsight: {
		Empty:   "Trends are evolving rapidly. Stay tuned for more insights.",
		Failure: "The community is buzzing with new ideas and decentralized growth. Collective sentiment remains high.",
	},
	KindMemberAudit: {
		Empty:   "Audit data unavailable at this time.",
		Failure: "Node displays consistent engagement patterns within standard protocol parameters. Security risk is currently negligible. Recommend continued monitoring of decentralized governance participation.",
	},
	KindOwnershipManifesto: {
		Empty:   "I own my code. I own my art. My wallet is my fortress.",
		Failure: "Autonomy is the prime directive. Every cryptographic signature is an act of creation and ownership.",
	},
	KindMarketingCopy: {
		Empty:   "Failed to generate copy. Please try again.",
		Failure: "Experience the future of decentralized coordination with our latest NexusCore module. Secure, scalable, and built for creators.",
	},
}

// Fallback returns the failure text for kind.
func Fallback(kind Kind) string {
	return fallbacks[kind].Failure
}

type Enricher struct {
	gen      Generator
	timeout  time.Duration
	recorder Recorder
}

func NewEnricher(gen Generator, timeout time.Duration, recorder Recorder) *Enricher {
	if gen == nil {
		gen = Unavailable{}
	}
	return &Enricher{gen: gen, timeout: timeout, recorder: recorder}
}

// Fetch runs one request under the enricher timeout and always returns text.
func (e *Enricher) Fetch(ctx context.Context, req Request) string {
	if req.Immediate != "" {
		return req.Immediate
	}
	fb, ok := fallbacks[req.Kind]
	if !ok {
		logger.Warn("Unknown enrichment kind", "kind", req.Kind)
		return ""
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.gen.Generate(ctx, req.Prompt)
	text = strings.TrimSpace(text)
	switch {
	case err != nil:
		logger.Warn("Enrichment failed, using fallback", "kind", req.Kind,
			"error", fmt.Errorf("%w: %w", domain.ErrEnrichmentUnavailable, err))
		e.record(req.Kind, "fallback")
		return fb.Failure
	case text == "":
		logger.Warn("Enrichment returned no text, using fallback", "kind", req.Kind)
		e.record(req.Kind, "empty")
		return fb.Empty
	}
	e.record(req.Kind, "ok")
	return text
}

func (e *Enricher) record(kind Kind, outcome string) {
	if e.recorder != nil {
		e.recorder.Enrichment(string(kind), outcome)
	}
}

// Unavailable is the generator used when no API key is configured.
type Unavailable struct{}

func (Unavailable) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("no generative text credentials configured")
}
