package provider

import (
	"context"
	"strings"

	"traitbase/internal/domain"
)

// Func fetches and normalizes one third-party trait dataset. The returned
// result's records carry no Dataset tag; the collector stamps provenance.
type Func func(ctx context.Context) (*domain.Result, error)

// Normalize canonicalizes a provider identifier: lowercase, trimmed.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeSpecies canonicalizes a taxon name into the form used across
// the whole database: lowercase with single underscores between name
// parts, e.g. "Quercus robur" -> "quercus_robur".
func NormalizeSpecies(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	return strings.Join(parts, "_")
}
