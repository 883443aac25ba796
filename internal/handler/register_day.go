package handler

import (
	"net/http"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

type setStartTimeRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *Handler) SetStartTime(c *gin.Context) {
	var req setStartTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	date, _ := models.ParseDate(req.Date)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)

	day, err := h.dayService.SetStartTime(c.Param("registerID"), date, startTime)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": day})
}

func (h *Handler) GetStartTime(c *gin.Context) {
	date, ok := h.dateQuery(c)
	if !ok {
		return
	}

	day, err := h.dayService.GetStartTime(c.Param("registerID"), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": day})
}

func (h *Handler) Roster(c *gin.Context) {
	date, ok := h.dateQuery(c)
	if !ok {
		return
	}

	status, err := h.rosterService.Status(c.Param("registerID"), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": status})
}
