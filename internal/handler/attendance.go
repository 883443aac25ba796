package handler

import (
	"net/http"
	"time"

	"attendance-tracker/internal/apperrors"
	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

type markPresentRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (h *Handler) MarkPresent(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req markPresentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}
	date, _ := models.ParseDate(req.Date)

	record, err := h.presenceService.MarkPresent(employeeID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}

func (h *Handler) GetPresence(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	date, ok := h.dateQuery(c)
	if !ok {
		return
	}

	record, err := h.presenceService.GetRecord(employeeID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}

type markAbsentRequest struct {
	PresenceRecordID string `json:"presence_record_id" binding:"required,uuid"`
	Timestamp        string `json:"timestamp" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *Handler) MarkAbsent(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req markAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	var absentAt time.Time
	if req.Timestamp != "" {
		absentAt, _ = time.Parse(time.RFC3339, req.Timestamp)
	}

	record, err := h.presenceService.MarkAbsent(employeeID, req.PresenceRecordID, absentAt)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}

type presenceActionRequest struct {
	PresenceRecordID string `json:"presence_record_id" binding:"required,uuid"`
}

func (h *Handler) ReturnFromAbsence(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req presenceActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	record, err := h.presenceService.MarkReturnFromAbsent(employeeID, req.PresenceRecordID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": record})
}

func (h *Handler) ClockOut(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req presenceActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	log, err := h.logService.ClockOut(employeeID, req.PresenceRecordID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": log})
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req presenceActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	log, err := h.logService.ClockIn(employeeID, req.PresenceRecordID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": log})
}

func (h *Handler) ListLogs(c *gin.Context) {
	logs, err := h.logService.ListLogs(c.Param("presenceID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": logs})
}

func (h *Handler) DeleteLog(c *gin.Context) {
	if err := h.logService.DeleteLog(c.Param("logID")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
