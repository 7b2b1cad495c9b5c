package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a job post without duplicating it.
const HeaderIdempotencyKey = "Idempotency-Key"

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /api/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string            false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createJobRequest  true   "Job details"
// @Success      201              {object}  domain.Job
// @Success      200              {object}  domain.Job  "Replay of an earlier post with the same Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateJob(c.Request().Context(), ports.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		EmployerID:     req.EmployerID,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, result.Job)
}

// List handles GET /api/jobs.
//
// @Summary      List jobs
// @Description  Returns every job with the posting employer's name. No pagination.
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.Job
// @Failure      500  {object}  errorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.ListJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}
