package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"traitbase/internal/domain"
)

// JSONCodec stores results as indented JSON. The numeric/categorical
// nil-vs-empty distinction survives the round trip because absent tables
// marshal as null and empty ones as [].
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Extension returns the file extension for cache entries.
func (c *JSONCodec) Extension() string {
	return ".json"
}

// Encode writes a result as JSON.
func (c *JSONCodec) Encode(w io.Writer, res *domain.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// Decode reads a result from JSON.
func (c *JSONCodec) Decode(r io.Reader) (*domain.Result, error) {
	var res domain.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}
