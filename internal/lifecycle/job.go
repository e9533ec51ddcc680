package lifecycle

import (
	"fmt"

	"salesdocs/internal/domain"
)

// jobStages is the forward path of a manufacturing job.
var jobStages = []domain.JobStatus{
	domain.JobStatusPending,
	domain.JobStatusInProgress,
	domain.JobStatusInAssembly,
	domain.JobStatusQA,
	domain.JobStatusPacked,
	domain.JobStatusShipped,
}

// IsValidJobStatus reports whether status (after alias normalization) is a known job status.
func IsValidJobStatus(status domain.JobStatus) bool {
	status = domain.NormalizeJobStatus(string(status))
	if status == domain.JobStatusCancelled {
		return true
	}
	for _, s := range jobStages {
		if s == status {
			return true
		}
	}
	return false
}

// IsJobTerminal reports whether a job in status can no longer move.
func IsJobTerminal(status domain.JobStatus) bool {
	return status == domain.JobStatusShipped || status == domain.JobStatusCancelled
}

// CanTransitionJob allows one step forward along the stages, or cancellation from any
// non-terminal status.
func CanTransitionJob(from, to domain.JobStatus) bool {
	from = domain.NormalizeJobStatus(string(from))
	to = domain.NormalizeJobStatus(string(to))
	if IsJobTerminal(from) {
		return false
	}
	if to == domain.JobStatusCancelled {
		return true
	}
	for i, s := range jobStages {
		if s == from {
			return i+1 < len(jobStages) && jobStages[i+1] == to
		}
	}
	return false
}

// TransitionJob moves job to status or returns ErrInvalidStatusTransition without touching job.
func TransitionJob(job *domain.ManufacturingJob, to domain.JobStatus) error {
	to = domain.NormalizeJobStatus(string(to))
	if !CanTransitionJob(job.Status, to) {
		return fmt.Errorf("%w: manufacturing job cannot move from %s to %s",
			domain.ErrInvalidStatusTransition, job.Status, to)
	}
	job.Status = to
	return nil
}
