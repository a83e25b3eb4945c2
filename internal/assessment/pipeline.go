package assessment

import (
	"context"
	"fmt"
	"strings"
)

// Step is one stage of the assessment. A step reads some of the record's
// fields and adds new ones; steps never remove anything.
type Step interface {
	Name() string
	Run(ctx context.Context, rec *Record) error
}

// Pipeline is a plain ordered list of steps executed in sequence. Any
// ordered sequence of steps composes identically, so no orchestration
// beyond the slice is needed.
type Pipeline []Step

// Run executes every step in order, stopping at the first failure.
func (p Pipeline) Run(ctx context.Context, rec *Record) error {
	for _, s := range p {
		if err := s.Run(ctx, rec); err != nil {
			return fmt.Errorf("%s step: %w", s.Name(), err)
		}
	}
	return nil
}

// String names the step sequence, e.g. "symptom -> dosha -> guidance -> safety".
func (p Pipeline) String() string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name()
	}
	return strings.Join(names, " -> ")
}
