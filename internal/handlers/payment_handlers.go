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

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// RecordPayment handles recording a payment for a member.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RecordPayment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.paymentService.ProcessPayment(req)
	if err != nil {
		utils.LogError(err, "RecordPayment: Error from paymentService.ProcessPayment")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrPaymentValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetPayments handles fetching the whole payment ledger.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.paymentService.GetAllPayments()
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetAllPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{"data": payments, "total": len(payments)})
}

// GetPaymentByID handles fetching a single ledger row.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	idStr := c.Param("id")
	paymentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment ID format.", err.Error()))
		return
	}

	payment, err := h.paymentService.GetPaymentByID(paymentID)
	if err != nil {
		utils.LogError(err, "GetPaymentByID: Error from paymentService.GetPaymentByID for ID "+idStr)
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetMemberPayments handles fetching one member's payment history.
func (h *PaymentHandler) GetMemberPayments(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	payments, err := h.paymentService.GetPaymentsByMember(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberPayments: Error from paymentService.GetPaymentsByMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member payments.", "Internal error"))
		}
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{"data": payments, "total": len(payments)})
}

// GetPendingPayments handles listing members who still owe fees.
func (h *PaymentHandler) GetPendingPayments(c *gin.Context) {
	members, err := h.paymentService.GetPendingPaymentMembers()
	if err != nil {
		utils.LogError(err, "GetPendingPayments: Error from paymentService.GetPendingPaymentMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch pending payments.", "Internal error"))
		return
	}

	if members == nil {
		members = []models.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"data": members, "total": len(members)})
}
