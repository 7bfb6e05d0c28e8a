// Package filler applies merged fill operations to a live page. Every
// operation is tried independently: a missing element, ambiguous selector,
// or page error costs that one operation and the run moves on.
package filler

import (
	"context"
	"fmt"
	"log"
	"time"

	"formpilot/internal/domain"
	"formpilot/internal/port"
)

const defaultOpTimeout = 5 * time.Second

type opStatus int

const (
	opApplied opStatus = iota
	opSkipped
	opFailed
)

// Result summarizes one execution run.
type Result struct {
	Filled  int
	Skipped int
	Failed  int
	// Results records the outcome of every operation in execution order.
	Results []domain.OperationResult
}

// Executor drives fill operations against a page session. Each operation
// runs under its own short timeout so one stuck element cannot stall the
// whole run.
type Executor struct {
	opTimeout time.Duration
}

// NewExecutor creates an executor with the given per-operation timeout.
// Non-positive means the default of five seconds.
func NewExecutor(opTimeout time.Duration) *Executor {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Executor{opTimeout: opTimeout}
}

// Apply runs the operations in order and returns per-operation outcomes plus
// counts. It never returns an error; failures are recorded and skipped.
func (e *Executor) Apply(ctx context.Context, page port.PageSession, ops []domain.FillOperation) *Result {
	res := &Result{Results: make([]domain.OperationResult, 0, len(ops))}

	for _, op := range ops {
		status, reason := e.applyOne(ctx, page, op)
		outcome := domain.OperationResult{Operation: op, Applied: status == opApplied, Reason: reason}
		res.Results = append(res.Results, outcome)

		switch status {
		case opApplied:
			res.Filled++
			log.Printf("filler.Executor: applied %s %s", op.Action, op.Selector)
		case opSkipped:
			res.Skipped++
			log.Printf("filler.Executor: skipped %s: %s", op.Selector, reason)
		case opFailed:
			res.Failed++
			log.Printf("filler.Executor: failed %s: %s", op.Selector, reason)
		}
	}
	return res
}

// applyOne checks that the selector resolves to exactly one element and then
// performs the action. Zero matches is a skip, not a failure; more than one
// match means the selector cannot be applied unambiguously.
func (e *Executor) applyOne(ctx context.Context, page port.PageSession, op domain.FillOperation) (opStatus, string) {
	opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	count, err := page.Count(opCtx, op.Selector)
	if err != nil {
		return opFailed, fmt.Sprintf("counting matches: %v", err)
	}
	if count == 0 {
		return opSkipped, "no matching element"
	}
	if count > 1 {
		return opFailed, fmt.Sprintf("ambiguous selector (%d matches)", count)
	}

	switch op.Action {
	case domain.ActionFill:
		if op.Value == nil {
			return opSkipped, "no value"
		}
		if err := page.Fill(opCtx, op.Selector, *op.Value); err != nil {
			return opFailed, err.Error()
		}
	case domain.ActionSelect:
		if op.Value == nil {
			return opSkipped, "no value"
		}
		if err := page.SelectOption(opCtx, op.Selector, *op.Value); err != nil {
			return opFailed, err.Error()
		}
	case domain.ActionCheck:
		if err := page.Check(opCtx, op.Selector); err != nil {
			return opFailed, err.Error()
		}
	case domain.ActionDate:
		if op.Value == nil {
			return opSkipped, "no value"
		}
		if err := page.Fill(opCtx, op.Selector, ConvertDate(*op.Value)); err != nil {
			return opFailed, err.Error()
		}
	default:
		return opFailed, fmt.Sprintf("unknown action %q", op.Action)
	}
	return opApplied, ""
}
