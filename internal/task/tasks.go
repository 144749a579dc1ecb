package task

import (
	"github.com/hibiken/asynq"
)

const TypeSweepTokens = "token:sweep"

// how often the scheduler enqueues a sweep
const SweepSchedule = "@every 1h"

// NewSweepTokensTask creates an Asynq task that purges expired refresh and
// access tokens. The task carries no payload; the sweep always covers
// everything expired at execution time.
func NewSweepTokensTask() *asynq.Task {
	return asynq.NewTask(TypeSweepTokens, nil)
}
