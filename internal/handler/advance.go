package handler

import (
	"net/http"

	"attendance-tracker/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type requestAdvanceRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

func (h *Handler) RequestAdvance(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	var req requestAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	advance, err := h.advanceService.Request(employeeID, req.AmountCents, req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": advance})
}

func (h *Handler) ListAdvances(c *gin.Context) {
	employeeID := c.Param("employeeID")
	if !h.actorCanActFor(c, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act for another employee"})
		return
	}

	advances, err := h.advanceService.ListByEmployee(employeeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": advances})
}

type decideAdvanceRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

func (h *Handler) DecideAdvance(c *gin.Context) {
	var req decideAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	advance, err := h.advanceService.Decide(c.Param("advanceID"), *req.Approve)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": advance})
}
