package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	// Create stores job and returns it with its generated ID.
	// Returns domain.ErrInvalidEmployerID when the employer id is malformed.
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// ListWithEmployer returns every stored job with Employer.Name resolved
	// from the users collection, in storage order.
	ListWithEmployer(ctx context.Context) ([]*domain.Job, error)
}
