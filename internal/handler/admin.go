package handler

import (
	"net/http"

	"attendance-tracker/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type createRegisterRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateRegister(c *gin.Context) {
	var req createRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	register, err := h.employeeService.CreateRegister(req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": register})
}

func (h *Handler) ListRegisters(c *gin.Context) {
	registers, err := h.employeeService.ListRegisters()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": registers})
}

func (h *Handler) DeleteRegister(c *gin.Context) {
	if err := h.employeeService.DeleteRegister(c.Param("registerID")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createEmployeeRequest struct {
	Name            string `json:"name" binding:"required"`
	StartTime       string `json:"start_time" binding:"required,timeofday"`
	EndTime         string `json:"end_time" binding:"required,timeofday"`
	DurationAllowed int    `json:"duration_allowed" binding:"required,gt=0,lte=1440"`
	Passcode        string `json:"passcode"`
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(
		c.Param("registerID"), req.Name, req.StartTime, req.EndTime, req.DurationAllowed, req.Passcode)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": employee})
}

func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Param("registerID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": employees})
}

type updateScheduleRequest struct {
	StartTime       string `json:"start_time" binding:"required,timeofday"`
	EndTime         string `json:"end_time" binding:"required,timeofday"`
	DurationAllowed int    `json:"duration_allowed" binding:"required,gt=0,lte=1440"`
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.Validation(err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateSchedule(
		c.Param("employeeID"), req.StartTime, req.EndTime, req.DurationAllowed)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": employee})
}
