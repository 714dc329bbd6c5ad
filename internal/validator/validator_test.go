package validator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/brandclash/brandclash-backend/internal/brand"
	"github.com/brandclash/brandclash-backend/internal/entity"
	"github.com/brandclash/brandclash-backend/internal/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLookupDown = errors.New("lookup is down")

type fakeLookup struct {
	result lookup.Result
	err    error
	calls  int
}

func (that *fakeLookup) Exists(_ context.Context, _ string) (lookup.Result, error) {
	that.calls++
	return that.result, that.err
}

func newTestValidator(fake *fakeLookup) *Validator {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	resolver := brand.NewResolver(brand.NewDictionary("Nike", "Adidas", "Esso"), 2)

	if fake == nil {
		return New(logger, resolver, nil)
	}

	return New(logger, resolver, fake)
}

func TestValidator_Validate(t *testing.T) {
	sut := newTestValidator(nil)

	t.Run("Valid first move", func(t *testing.T) {
		// When: submitting a known brand with no previous word
		result := sut.Validate("Nike", "")

		// Then: valid, sourced from the local dictionary
		require.True(t, result.Valid)
		assert.Equal(t, "Nike", result.Brand)
		assert.Equal(t, entity.SourceDatabase, result.Source)
		assert.Empty(t, result.Error)
	})

	t.Run("Empty word is rejected", func(t *testing.T) {
		result := sut.Validate("   ", "")

		require.False(t, result.Valid)
		assert.Equal(t, "word is empty", result.Error)
	})

	t.Run("Unknown brand is rejected without suggestion", func(t *testing.T) {
		result := sut.Validate("Zzzzzzzz", "")

		require.False(t, result.Valid)
		assert.Contains(t, result.Error, "not a recognized brand")
		assert.Empty(t, result.Suggestion)
	})

	t.Run("Fuzzy hit yields a suggestion, never an accept", func(t *testing.T) {
		// Given: "Adidaz" is one typo away from "Adidas" and previous is unset,
		// so the chain rule alone would pass
		result := sut.Validate("Adidaz", "")

		// Then: still invalid, with a did-you-mean suggestion
		require.False(t, result.Valid)
		assert.Equal(t, "Adidas", result.Suggestion)
		assert.Contains(t, result.Error, "did you mean")
		assert.Empty(t, result.Source)
	})

	t.Run("Chain rule violation names the required letter", func(t *testing.T) {
		// Given: previous word "Nike" requires the letter "e"
		result := sut.Validate("Adidas", "Nike")

		require.False(t, result.Valid)
		assert.Contains(t, result.Error, `"e"`)
		assert.Empty(t, result.Brand)
		assert.Empty(t, result.Suggestion)
	})

	t.Run("Chain rule satisfied", func(t *testing.T) {
		result := sut.Validate("Esso", "Nike")

		require.True(t, result.Valid)
		assert.Equal(t, "Esso", result.Brand)
	})
}

func TestValidator_ValidateWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("External hit passing the chain rule is accepted", func(t *testing.T) {
		// Given: a lookup that knows "Coca-Cola"
		fake := &fakeLookup{result: lookup.Result{Exists: true, CanonicalTitle: "Coca-Cola"}}
		sut := newTestValidator(fake)

		// When: submitting a word absent from the local dictionary
		result := sut.ValidateWithFallback(ctx, "Coca-Cola", "")

		// Then: valid with the canonical title, sourced externally
		require.True(t, result.Valid)
		assert.Equal(t, "Coca-Cola", result.Brand)
		assert.Equal(t, entity.SourceExternal, result.Source)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("External hit failing the chain rule is rejected with the letter", func(t *testing.T) {
		fake := &fakeLookup{result: lookup.Result{Exists: true, CanonicalTitle: "Coca-Cola"}}
		sut := newTestValidator(fake)

		result := sut.ValidateWithFallback(ctx, "Coca-Cola", "Nike")

		require.False(t, result.Valid)
		assert.Contains(t, result.Error, `"e"`)
		assert.Equal(t, entity.SourceExternal, result.Source)
	})

	t.Run("Lookup miss keeps the original rejection", func(t *testing.T) {
		fake := &fakeLookup{result: lookup.Result{}}
		sut := newTestValidator(fake)

		result := sut.ValidateWithFallback(ctx, "Somebrand", "")

		require.False(t, result.Valid)
		assert.Contains(t, result.Error, "not a recognized brand")
		assert.Empty(t, result.Source)
	})

	t.Run("Lookup failure degrades to the original rejection", func(t *testing.T) {
		// Given: a lookup that errors out
		fake := &fakeLookup{err: errLookupDown}
		sut := newTestValidator(fake)

		// When: validating a locally unknown word
		result := sut.ValidateWithFallback(ctx, "Somebrand", "")

		// Then: the player sees the plain no-match rejection, nothing fatal
		require.False(t, result.Valid)
		assert.Contains(t, result.Error, "not a recognized brand")
	})

	t.Run("Lookup is not consulted for fuzzy rejections", func(t *testing.T) {
		fake := &fakeLookup{result: lookup.Result{Exists: true, CanonicalTitle: "Adidaz"}}
		sut := newTestValidator(fake)

		result := sut.ValidateWithFallback(ctx, "Adidaz", "")

		require.False(t, result.Valid)
		assert.Equal(t, "Adidas", result.Suggestion)
		assert.Zero(t, fake.calls)
	})

	t.Run("Lookup is not consulted for chain rule rejections", func(t *testing.T) {
		fake := &fakeLookup{result: lookup.Result{Exists: true}}
		sut := newTestValidator(fake)

		result := sut.ValidateWithFallback(ctx, "Adidas", "Nike")

		require.False(t, result.Valid)
		assert.Zero(t, fake.calls)
	})

	t.Run("Nil lookup behaves like the synchronous path", func(t *testing.T) {
		sut := newTestValidator(nil)

		result := sut.ValidateWithFallback(ctx, "Somebrand", "")

		require.False(t, result.Valid)
		assert.Contains(t, result.Error, "not a recognized brand")
	})
}
