package worker

import (
	"context"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/usecase/auth"
)

// SweepTokensHandler handles a token-sweep task by delegating to the auth
// sweeper and logging the outcome.
func SweepTokensHandler(ctx context.Context, svc auth.Sweeper) error {
	report, err := svc.SweepExpired(ctx)
	if err != nil {
		log.Printf("❌  Token sweep failed: %v", err)
		return err
	}
	log.Printf("✅  Token sweep done: %d refresh, %d access tokens removed", report.RefreshDeleted, report.AccessDeleted)
	return nil
}
