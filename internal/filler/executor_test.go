package filler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"formpilot/internal/domain"
	"formpilot/internal/filler"
	"formpilot/mocks"
)

func strPtr(s string) *string {
	return &s
}

func TestExecutor_Apply_MixedOutcomes(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	page.On("Count", mock.Anything, "#missing").Return(0, nil)
	page.On("Count", mock.Anything, "#city").Return(3, nil)
	page.On("Count", mock.Anything, "#attorney-eligible").Return(1, nil)
	page.On("Check", mock.Anything, "#attorney-eligible").Return(nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionFill, Selector: "#family-name", Value: strPtr("Nguyen")},
		{Action: domain.ActionFill, Selector: "#missing", Value: strPtr("x")},
		{Action: domain.ActionFill, Selector: "#city", Value: strPtr("Fresno")},
		{Action: domain.ActionCheck, Selector: "#attorney-eligible"},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 2, res.Filled)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)

	require.Len(t, res.Results, 4)
	assert.True(t, res.Results[0].Applied)
	assert.False(t, res.Results[1].Applied)
	assert.Equal(t, "no matching element", res.Results[1].Reason)
	assert.False(t, res.Results[2].Applied)
	assert.Contains(t, res.Results[2].Reason, "ambiguous selector")
	assert.True(t, res.Results[3].Applied)

	page.AssertExpectations(t)
}

func TestExecutor_Apply_ConvertsDateValues(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#date-of-birth").Return(1, nil)
	page.On("Fill", mock.Anything, "#date-of-birth", "1992-03-14").Return(nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionDate, Selector: "#date-of-birth", Value: strPtr("03/14/1992")},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 1, res.Filled)
	page.AssertExpectations(t)
}

func TestExecutor_Apply_NilValueSkipped(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, mock.Anything).Return(1, nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionFill, Selector: "#a"},
		{Action: domain.ActionSelect, Selector: "#b"},
		{Action: domain.ActionDate, Selector: "#c"},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 0, res.Filled)
	assert.Equal(t, 3, res.Skipped)
	for _, r := range res.Results {
		assert.Equal(t, "no value", r.Reason)
	}
	page.AssertNotCalled(t, "Fill", mock.Anything, mock.Anything, mock.Anything)
	page.AssertNotCalled(t, "SelectOption", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecutor_Apply_FailureDoesNotAbortRun(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#email").Return(1, nil)
	page.On("Fill", mock.Anything, "#email", "a@firm.example").Return(errors.New("node detached"))
	page.On("Count", mock.Anything, "#city").Return(1, nil)
	page.On("Fill", mock.Anything, "#city", "Fresno").Return(nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionFill, Selector: "#email", Value: strPtr("a@firm.example")},
		{Action: domain.ActionFill, Selector: "#city", Value: strPtr("Fresno")},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Filled)
	require.Len(t, res.Results, 2)
	assert.Contains(t, res.Results[0].Reason, "node detached")
	assert.True(t, res.Results[1].Applied)
	page.AssertExpectations(t)
}

func TestExecutor_Apply_CountError(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#email").Return(0, errors.New("page closed"))

	ops := []domain.FillOperation{
		{Action: domain.ActionFill, Selector: "#email", Value: strPtr("a@firm.example")},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, res.Results[0].Reason, "counting matches")
}

func TestExecutor_Apply_SelectUsesOptionValue(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#country").Return(1, nil)
	page.On("SelectOption", mock.Anything, "#country", "IN").Return(nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionSelect, Selector: "#country", Value: strPtr("IN")},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 1, res.Filled)
	page.AssertExpectations(t)
}

func TestExecutor_Apply_UnknownAction(t *testing.T) {
	page := new(mocks.MockPageSession)
	page.On("Count", mock.Anything, "#email").Return(1, nil)

	ops := []domain.FillOperation{
		{Action: domain.ActionKind("hover"), Selector: "#email", Value: strPtr("x")},
	}

	res := filler.NewExecutor(0).Apply(context.Background(), page, ops)

	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, res.Results[0].Reason, "unknown action")
}

func TestExecutor_Apply_NoOperations(t *testing.T) {
	page := new(mocks.MockPageSession)

	res := filler.NewExecutor(0).Apply(context.Background(), page, nil)

	assert.Zero(t, res.Filled)
	assert.Zero(t, res.Skipped)
	assert.Zero(t, res.Failed)
	assert.Empty(t, res.Results)
}
