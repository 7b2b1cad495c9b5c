package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// IdempotencyStore remembers which job an Idempotency-Key produced (Redis).
//
// The key is recorded only after the job is inserted, so two concurrent posts
// carrying the same key can both insert a job. Remember keeps the first
// mapping, and later replays return that job.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (jobID string, found bool, err error)
	Remember(ctx context.Context, key, jobID string) error
}

type JobService struct {
	repo   ports.JobRepository
	idem   IdempotencyStore // nil disables idempotent replays
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, idem IdempotencyStore, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, idem: idem, logger: logger}
}

// CreateJob stores a new job posting. The employer id is not checked against
// the users collection or the employer role. If an idempotency key is
// provided and already seen, the previously created job is returned instead.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*ports.CreateJobResult, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	employerID := strings.TrimSpace(input.EmployerID)
	if title == "" || description == "" || employerID == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing := s.replay(ctx, input.IdempotencyKey); existing != nil {
		metrics.JobReplaysTotal.Inc()
		s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("job_id", existing.ID).Msg("idempotent replay")
		return &ports.CreateJobResult{Job: existing, AlreadyExisted: true}, nil
	}

	created, err := s.repo.Create(ctx, &domain.Job{
		Title:       title,
		Description: description,
		Employer:    domain.Employer{ID: employerID},
		Bids:        []string{},
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("employer_id", employerID).Msg("failed to create job")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.JobsCreatedTotal.Inc()
	s.logger.Info().Str("job_id", created.ID).Str("employer_id", employerID).Msg("job created")

	return &ports.CreateJobResult{Job: created}, nil
}

// ListJobs returns every job with its employer's name attached.
func (s *JobService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.ListWithEmployer(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list jobs")
		return nil, err
	}
	return jobs, nil
}

// replay returns the job an earlier request with key produced, or nil.
// Lookup failures fall through to a normal create.
func (s *JobService) replay(ctx context.Context, key string) *domain.Job {
	if key == "" || s.idem == nil {
		return nil
	}

	jobID, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Str("job_id", jobID).Msg("replayed job not found, creating anyway")
		return nil
	}
	return job
}
