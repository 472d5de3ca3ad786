package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance service.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

// CheckInRequest is the payload for the check-in endpoint.
type CheckInRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// CheckIn handles a member's daily check-in by phone number.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CheckIn: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.attendanceService.CheckIn(req.Phone)
	if err != nil {
		utils.LogError(err, "CheckIn: Error from attendanceService.CheckIn")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipExpired) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeMembershipExpired, "Membership has expired. Please renew.", err.Error()))
		} else if errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeAlreadyCheckedIn, "Member has already checked in today.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record check-in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetTodayAttendance handles listing today's check-ins.
func (h *AttendanceHandler) GetTodayAttendance(c *gin.Context) {
	events, err := h.attendanceService.GetTodayAttendance()
	if err != nil {
		utils.LogError(err, "GetTodayAttendance: Error from attendanceService.GetTodayAttendance")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch today's attendance.", "Internal error"))
		return
	}

	if events == nil {
		events = []models.AttendanceEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total": len(events)})
}

// GetMemberAttendance handles listing one member's check-in history.
func (h *AttendanceHandler) GetMemberAttendance(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	events, err := h.attendanceService.GetMemberAttendance(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberAttendance: Error from attendanceService.GetMemberAttendance for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member attendance.", "Internal error"))
		}
		return
	}

	if events == nil {
		events = []models.AttendanceEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total": len(events)})
}

// GetAttendanceByTrainer handles listing check-ins for one trainer.
func (h *AttendanceHandler) GetAttendanceByTrainer(c *gin.Context) {
	trainerName := c.Param("name")

	events, err := h.attendanceService.GetAttendanceByTrainer(trainerName)
	if err != nil {
		utils.LogError(err, "GetAttendanceByTrainer: Error from attendanceService.GetAttendanceByTrainer for "+trainerName)
		if errors.Is(err, services.ErrUnknownTrainer) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Trainer is not on the roster.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch trainer attendance.", "Internal error"))
		}
		return
	}

	if events == nil {
		events = []models.AttendanceEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total": len(events)})
}
