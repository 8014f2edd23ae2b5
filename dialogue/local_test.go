package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGeneratorCannedQuestions(t *testing.T) {
	gen := &LocalGenerator{}
	plan, err := gen.GenerateFollowUps(context.Background(), &Request{
		MissingFields: []string{"recipient", "context"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, plan.Message)
	require.Len(t, plan.Questions, 2)
	assert.Equal(t, "recipient", plan.Questions[0].Field)
	assert.Equal(t, "Who would you like to send this email to?", plan.Questions[0].Question)
	assert.NotEmpty(t, plan.Questions[0].Options)
	assert.Equal(t, "context", plan.Questions[1].Field)
}

func TestLocalGeneratorUnknownField(t *testing.T) {
	gen := &LocalGenerator{}
	plan, err := gen.GenerateFollowUps(context.Background(), &Request{
		MissingFields: []string{"deadline"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Questions, 1)
	assert.Contains(t, plan.Questions[0].Question, "deadline")
}

type failingGenerator struct{}

func (failingGenerator) GenerateFollowUps(ctx context.Context, req *Request) (*Plan, error) {
	return nil, errors.New("model unreachable")
}

func TestFailbackGeneratorFallsThrough(t *testing.T) {
	gen := NewFailbackGenerator(failingGenerator{}, &LocalGenerator{})
	plan, err := gen.GenerateFollowUps(context.Background(), &Request{
		MissingFields: []string{"purpose"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Questions, 1)
	assert.Equal(t, "purpose", plan.Questions[0].Field)
}

func TestFailbackGeneratorAllFail(t *testing.T) {
	gen := NewFailbackGenerator(failingGenerator{}, failingGenerator{})
	_, err := gen.GenerateFollowUps(context.Background(), &Request{MissingFields: []string{"purpose"}})
	require.Error(t, err)
}
