package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/port"
)

// Sweeper prunes expired tokens. It runs out-of-band on a schedule, never on
// the request path.
type Sweeper interface {
	SweepExpired(ctx context.Context) (SweepReport, error)
}

type sweepSrv struct {
	refresh port.RefreshTokenRepository
	access  port.AccessTokenRepository
}

// NewSweeper constructs a Sweeper implementation.
func NewSweeper(refresh port.RefreshTokenRepository, access port.AccessTokenRepository) Sweeper {
	return &sweepSrv{refresh: refresh, access: access}
}

type SweepReport struct {
	RefreshDeleted int64 `json:"refresh_deleted"`
	AccessDeleted  int64 `json:"access_deleted"`
}

func (s *sweepSrv) SweepExpired(ctx context.Context) (SweepReport, error) {
	now := time.Now().UTC()

	refreshDeleted, err := s.refresh.DeleteExpired(ctx, now)
	if err != nil {
		return SweepReport{}, fmt.Errorf("sweeping refresh tokens: %w", err)
	}
	accessDeleted, err := s.access.DeleteExpired(ctx, now)
	if err != nil {
		return SweepReport{}, fmt.Errorf("sweeping access tokens: %w", err)
	}

	report := SweepReport{RefreshDeleted: refreshDeleted, AccessDeleted: accessDeleted}
	if report.RefreshDeleted > 0 || report.AccessDeleted > 0 {
		log.Printf("token sweep removed %d refresh and %d access tokens", report.RefreshDeleted, report.AccessDeleted)
	}
	return report, nil
}
