package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/job"
)

// JobHandler exposes the background job queue to admins
type JobHandler struct {
	BaseHandler
	jobs *job.AdminService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(base BaseHandler, jobs *job.AdminService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

// List godoc
//
//	@Summary	List jobs
//	@Tags		jobs
//	@Produce	json
//	@Param		status	query		string	false	"PENDING, RUNNING, RETRY, COMPLETED or FAILED"
//	@Param		page	query		int		false	"Page number, zero based"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[job.JobResponse]
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.jobs.List(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Stats godoc
//
//	@Summary	Job counts per status
//	@Tags		jobs
//	@Produce	json
//	@Success	200	{object}	job.StatsResponse
//	@Router		/jobs/stats [get]
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobs.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, stats)
}

// Get godoc
//
//	@Summary	Get a job
//	@Tags		jobs
//	@Produce	json
//	@Param		id	path		string	true	"Job ID"
//	@Success	200	{object}	job.JobResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "job")
	if !ok {
		return
	}
	j, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, j)
}

// Requeue godoc
//
//	@Summary		Requeue a failed job
//	@Description	Moves a FAILED job back to PENDING with a zero failure count
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	job.JobResponse
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Router			/jobs/{id}/requeue [post]
func (h *JobHandler) Requeue(c *gin.Context) {
	id, ok := h.pathID(c, "id", "job")
	if !ok {
		return
	}
	j, err := h.jobs.Requeue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, j)
}
