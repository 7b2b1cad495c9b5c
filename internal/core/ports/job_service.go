package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// CreateJobInput carries all data needed to post a job.
type CreateJobInput struct {
	Title          string
	Description    string
	EmployerID     string
	IdempotencyKey string
}

// CreateJobResult is returned by the service after posting a job.
type CreateJobResult struct {
	Job *domain.Job
	// AlreadyExisted is true when the Idempotency-Key matched an earlier post.
	AlreadyExisted bool
}

// JobService defines use-case operations for job postings.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*CreateJobResult, error)
	ListJobs(ctx context.Context) ([]*domain.Job, error)
}
