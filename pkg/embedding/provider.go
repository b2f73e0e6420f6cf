package embedding

import (
	"context"
	"math"
)

type EmbeddingResponse struct {
	Values    []float32
	Dimension int
}

// Provider generates a dense embedding for one text.
type Provider interface {
	Generate(ctx context.Context, text string) (*EmbeddingResponse, error)
}

// normalize scales the vector to unit length so cosine similarity can be
// computed as a plain dot product in the store.
func normalize(values []float32) []float32 {
	var sum float64
	for _, v := range values {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return values
	}
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
