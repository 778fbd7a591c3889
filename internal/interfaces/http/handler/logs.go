package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/audit"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// LogHandler serves the audit views
type LogHandler struct {
	BaseHandler
	audit *audit.Service
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(base BaseHandler, svc *audit.Service) *LogHandler {
	return &LogHandler{BaseHandler: base, audit: svc}
}

type historyQuery struct {
	Action    string    `form:"action"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02"`
}

type loginsQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

// General godoc
//
//	@Summary	List general logs
//	@Tags		logs
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[audit.LogResponse]
//	@Router		/logs/general [get]
func (h *LogHandler) General(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.audit.Logs(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// UserHistory godoc
//
//	@Summary		List user history
//	@Description	Defaults to the last three months
//	@Tags			logs
//	@Produce		json
//	@Param			userId		query		string	false	"User ID"
//	@Param			action		query		string	false	"Action, e.g. LOGIN or PROMOTION"
//	@Param			startDate	query		string	false	"YYYY-MM-DD"
//	@Param			endDate		query		string	false	"YYYY-MM-DD"
//	@Success		200			{array}		audit.HistoryResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Router			/logs/user-history [get]
func (h *LogHandler) UserHistory(c *gin.Context) {
	var q historyQuery
	if !h.bindQuery(c, &q) {
		return
	}
	userID, ok := h.optionalUUID(c, "userId", "user")
	if !ok {
		return
	}
	if !q.EndDate.IsZero() {
		// inclusive of the whole end day
		q.EndDate = q.EndDate.Add(24*time.Hour - time.Nanosecond)
	}
	rows, err := h.audit.History(c.Request.Context(), middleware.CompanyID(c), audit.HistoryQuery{
		UserID:    userID,
		Action:    q.Action,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, rows)
}

// Logins godoc
//
//	@Summary	Daily login counts
//	@Tags		logs
//	@Produce	json
//	@Param		days	query	int	false	"Number of days, today included"
//	@Success	200		{array}	audit.DailyLogins
//	@Router		/logs/logins [get]
func (h *LogHandler) Logins(c *gin.Context) {
	var q loginsQuery
	if !h.bindQuery(c, &q) {
		return
	}
	counts, err := h.audit.LoginCounts(c.Request.Context(), middleware.CompanyID(c), q.Days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, counts)
}
