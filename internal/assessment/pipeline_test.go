package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedStep struct {
	name string
	err  error
	ran  *[]string
}

func (s namedStep) Name() string { return s.name }

func (s namedStep) Run(_ context.Context, _ *Record) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func TestPipelineRunsStepsInOrder(t *testing.T) {
	var ran []string
	p := Pipeline{
		namedStep{name: "first", ran: &ran},
		namedStep{name: "second", ran: &ran},
		namedStep{name: "third", ran: &ran},
	}

	require.NoError(t, p.Run(context.Background(), &Record{}))
	assert.Equal(t, []string{"first", "second", "third"}, ran)
	assert.Equal(t, "first -> second -> third", p.String())
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	p := Pipeline{
		namedStep{name: "first", ran: &ran},
		namedStep{name: "second", err: boom, ran: &ran},
		namedStep{name: "third", ran: &ran},
	}

	err := p.Run(context.Background(), &Record{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "second step")
	assert.Equal(t, []string{"first", "second"}, ran)
}
