package scheduler

import (
	"github.com/rs/zerolog"
)

// RequestPruner deletes rows older than the retention window
type RequestPruner interface {
	Prune(retentionDays int) (int64, error)
}

// PruneJob trims the report request log on a schedule
type PruneJob struct {
	pruner        RequestPruner
	retentionDays int
	log           zerolog.Logger
}

// NewPruneJob creates a new prune job
func NewPruneJob(pruner RequestPruner, retentionDays int, log zerolog.Logger) *PruneJob {
	return &PruneJob{
		pruner:        pruner,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "request_log_prune").Logger(),
	}
}

// Name implements Job
func (j *PruneJob) Name() string {
	return "request_log_prune"
}

// Run implements Job
func (j *PruneJob) Run() error {
	deleted, err := j.pruner.Prune(j.retentionDays)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Pruned report request log")
	}
	return nil
}
