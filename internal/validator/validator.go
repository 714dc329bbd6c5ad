// Package validator composes the chain rule, the brand resolver and the
// external fallback lookup into a single pass/fail verdict for one word.
package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brandclash/brandclash-backend/internal/brand"
	"github.com/brandclash/brandclash-backend/internal/chain"
	"github.com/brandclash/brandclash-backend/internal/entity"
	"github.com/brandclash/brandclash-backend/internal/lookup"
)

// rejection reasons, used internally to decide whether the external
// fallback may be consulted.
const (
	reasonNone = iota
	reasonEmptyWord
	reasonUnknownBrand
	reasonFuzzySuggestion
	reasonWrongLetter
)

// Result - the full verdict for one submitted word.
type Result struct {
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	Brand      string `json:"brand,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Source     string `json:"source,omitempty"`

	reason int
}

type externalLookup interface {
	Exists(ctx context.Context, term string) (lookup.Result, error)
}

// Validator - validates submitted words against the dictionary, the chain
// rule and, when nothing matches locally, the external lookup.
type Validator struct {
	logger   *slog.Logger
	resolver *brand.Resolver
	lookup   externalLookup
}

// New - lookup may be nil, in which case ValidateWithFallback behaves
// exactly like Validate.
func New(logger *slog.Logger, resolver *brand.Resolver, lookup externalLookup) *Validator {
	return &Validator{
		logger:   logger.With("component", "validator"),
		resolver: resolver,
		lookup:   lookup,
	}
}

// Validate - the synchronous path: empty check, brand resolution, then the
// chain rule. A fuzzy hit is never auto-accepted, even when it would satisfy
// the chain rule; the player gets a suggestion instead.
func (that *Validator) Validate(word, previousWord string) Result {
	candidate := strings.TrimSpace(word)
	if candidate == "" {
		return Result{
			Error:  "word is empty",
			reason: reasonEmptyWord,
		}
	}

	outcome := that.resolver.Resolve(candidate)

	switch outcome.Confidence {
	case brand.ConfidenceNone:
		return Result{
			Error:  fmt.Sprintf("%q is not a recognized brand", candidate),
			reason: reasonUnknownBrand,
		}
	case brand.ConfidenceFuzzy:
		return Result{
			Error:      fmt.Sprintf("did you mean %q?", outcome.Brand),
			Suggestion: outcome.Brand,
			reason:     reasonFuzzySuggestion,
		}
	}

	if !chain.Continues(candidate, previousWord) {
		return Result{
			Error:  wrongLetterMessage(previousWord),
			reason: reasonWrongLetter,
		}
	}

	return Result{
		Valid:  true,
		Brand:  outcome.Brand,
		Source: entity.SourceDatabase,
	}
}

// ValidateWithFallback - runs the synchronous path first and escalates to
// the external lookup only when the word matched nothing locally. Lookup
// faults are absorbed: the player just sees the original rejection.
func (that *Validator) ValidateWithFallback(ctx context.Context, word, previousWord string) Result {
	verdict := that.Validate(word, previousWord)
	if verdict.reason != reasonUnknownBrand || that.lookup == nil {
		return verdict
	}

	candidate := strings.TrimSpace(word)

	found, err := that.lookup.Exists(ctx, candidate)
	if err != nil {
		that.logger.Warn("external lookup failed, treating as not found", "word", candidate, "error", err)
		return verdict
	}

	if !found.Exists {
		return verdict
	}

	if !chain.Continues(candidate, previousWord) {
		return Result{
			Error:  wrongLetterMessage(previousWord),
			Source: entity.SourceExternal,
			reason: reasonWrongLetter,
		}
	}

	return Result{
		Valid:  true,
		Brand:  found.CanonicalTitle,
		Source: entity.SourceExternal,
	}
}

func wrongLetterMessage(previousWord string) string {
	return fmt.Sprintf("word must start with the letter %q", chain.RequiredLetter(previousWord))
}
