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

// TrainingHandler holds the training service.
type TrainingHandler struct {
	trainingService services.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(ts services.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: ts}
}

// AssignTraining handles creating a personal-training assignment.
func (h *TrainingHandler) AssignTraining(c *gin.Context) {
	var req services.AssignTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AssignTraining: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	training, err := h.trainingService.AssignTraining(req)
	if err != nil {
		utils.LogError(err, "AssignTraining: Error from trainingService.AssignTraining")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrUnknownTrainer) || errors.Is(err, services.ErrTrainingValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to assign training.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, training)
}

// GetAllTraining handles listing every training assignment.
func (h *TrainingHandler) GetAllTraining(c *gin.Context) {
	training, err := h.trainingService.GetAllTraining()
	if err != nil {
		utils.LogError(err, "GetAllTraining: Error from trainingService.GetAllTraining")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch training assignments.", "Internal error"))
		return
	}

	if training == nil {
		training = []models.PersonalTraining{}
	}
	c.JSON(http.StatusOK, gin.H{"data": training, "total": len(training)})
}

// GetTrainers returns the trainer roster.
func (h *TrainingHandler) GetTrainers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.trainingService.GetTrainers()})
}

// GetMemberTraining handles listing a member's training history.
func (h *TrainingHandler) GetMemberTraining(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	training, err := h.trainingService.GetTrainingByMember(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberTraining: Error from trainingService.GetTrainingByMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member training.", "Internal error"))
		}
		return
	}

	if training == nil {
		training = []models.PersonalTraining{}
	}
	c.JSON(http.StatusOK, gin.H{"data": training, "total": len(training)})
}

// UpdateTraining handles editing a training assignment.
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	idStr := c.Param("id")
	trainingID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid training ID format.", err.Error()))
		return
	}

	var req services.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateTraining: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	training, err := h.trainingService.UpdateTraining(trainingID, req)
	if err != nil {
		utils.LogError(err, "UpdateTraining: Error from trainingService.UpdateTraining for ID "+idStr)
		if errors.Is(err, services.ErrTrainingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Training assignment not found.", err.Error()))
		} else if errors.Is(err, services.ErrUnknownTrainer) || errors.Is(err, services.ErrTrainingValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update training.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, training)
}

// DeleteTraining handles removing a training assignment.
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	idStr := c.Param("id")
	trainingID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid training ID format.", err.Error()))
		return
	}

	if err = h.trainingService.DeleteTraining(trainingID); err != nil {
		utils.LogError(err, "DeleteTraining: Error from trainingService.DeleteTraining for ID "+idStr)
		if errors.Is(err, services.ErrTrainingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Training assignment not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete training.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training assignment deleted successfully"})
}
