package transform

import (
	"errors"
	"fmt"
)

type Pipeline struct {
	// Applied 0..N when encoding, N..0 when decoding.
	transforms []Transform
}

// NewPipeline creates a pipeline from the given stages.
// Requires at least one transform. Use NewNoOpTransform() for an explicitly empty pipeline.
func NewPipeline(stages ...Transform) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("pipeline requires at least one transform; use NewNoOpTransform() for an empty pipeline")
	}

	s := make([]Transform, len(stages))
	copy(s, stages)

	return &Pipeline{
		transforms: s,
	}, nil
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.transforms) }

// Encode applies the stages in forward order (0..N).
func (p *Pipeline) Encode(data []byte) ([]byte, error) {
	var err error
	current := data
	for i, t := range p.transforms {
		current, err = t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("encode: transform %d (%T) Apply failed: %w", i, t, err)
		}
	}
	return current, nil
}

// Decode applies the stages in reverse order (N..0).
func (p *Pipeline) Decode(data []byte) ([]byte, error) {
	var err error
	current := data
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		current, err = t.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("decode: transform %d (%T) Reverse failed: %w", i, t, err)
		}
	}
	return current, nil
}

// Apply and Reverse let a pipeline be nested as a single stage of another one.
func (p *Pipeline) Apply(data []byte) ([]byte, error)   { return p.Encode(data) }
func (p *Pipeline) Reverse(data []byte) ([]byte, error) { return p.Decode(data) }
