// Package codec serializes per-dataset results and derived tables.
package codec

import (
	"io"

	"traitbase/internal/domain"
)

// ResultCodec encodes and decodes a per-dataset result. The cache layer
// uses it for its on-disk entries.
type ResultCodec interface {
	Encode(w io.Writer, res *domain.Result) error
	Decode(r io.Reader) (*domain.Result, error)
	Extension() string
}
