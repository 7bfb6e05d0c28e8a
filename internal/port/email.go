package port

import (
	"context"

	"formpilot/internal/domain"
)

// RunNotifier defines the contract for telling operators how a populate run
// went. Notification failures are logged, never fatal to the run.
type RunNotifier interface {
	SendRunSummary(ctx context.Context, artifact *domain.SessionArtifact) error
}
