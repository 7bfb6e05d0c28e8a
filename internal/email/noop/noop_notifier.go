package noop

import (
	"context"
	"log"

	"formpilot/internal/domain"
	"formpilot/internal/port"
)

type noopNotifier struct{}

// NewNotifier creates a RunNotifier that only logs the run summary. Used when
// no email delivery is configured.
func NewNotifier() port.RunNotifier {
	return &noopNotifier{}
}

func (n *noopNotifier) SendRunSummary(_ context.Context, artifact *domain.SessionArtifact) error {
	log.Printf("[NOOP EMAIL] run %s: filled %d of %d fields on %s (session %s)",
		artifact.RunID, artifact.FilledCount, artifact.AttemptedCount, artifact.FormURL, artifact.SessionID)
	return nil
}
