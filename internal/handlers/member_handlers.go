package handlers

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"

	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
	photoBaseDir  string
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService, photoBaseDir string) *MemberHandler {
	return &MemberHandler{memberService: ms, photoBaseDir: photoBaseDir}
}

// RegisterMember handles the registration of a new member.
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.RegisterMember(req)
	if err != nil {
		utils.LogError(err, "RegisterMember: Error from memberService.RegisterMember")
		if errors.Is(err, services.ErrPhoneNumberExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMembers handles fetching all members with optional search.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	searchTerm := c.Query("search")
	var pSearchTerm *string
	if searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	members, err := h.memberService.GetMembers(pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch members.", "Internal error"))
		return
	}

	if members == nil {
		members = []models.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"data": members, "total": len(members)})
}

// GetMemberByID handles fetching a single member by ID.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// GetMemberFeeDetails handles the fee lookup by phone number.
func (h *MemberHandler) GetMemberFeeDetails(c *gin.Context) {
	phone := c.Param("phone")

	details, err := h.memberService.GetMemberFeeDetails(phone)
	if err != nil {
		utils.LogError(err, "GetMemberFeeDetails: Error from memberService.GetMemberFeeDetails for phone "+phone)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch fee details.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateMember handles updating a member's registration fields.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMember: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.UpdateMember(memberID, req)
	if err != nil {
		utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrPhoneNumberExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles deleting a member.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	if err = h.memberService.DeleteMember(memberID); err != nil {
		utils.LogError(err, "DeleteMember: Error from memberService.DeleteMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// UploadMemberPhoto accepts a photo file, stores it resized and records
// the path on the member.
func (h *MemberHandler) UploadMemberPhoto(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		}
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Photo file is required.", err.Error()))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not open uploaded photo.", err.Error()))
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Uploaded file is not a valid image.", err.Error()))
		return
	}

	relPath, err := utils.SaveMemberPhoto(img, member.Phone, h.photoBaseDir)
	if err != nil {
		utils.LogError(err, "UploadMemberPhoto: Failed to save photo for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save photo.", "Internal error"))
		return
	}

	if err = h.memberService.UpdateMemberPhoto(memberID, relPath); err != nil {
		utils.LogError(err, "UploadMemberPhoto: Failed to record photo path for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record photo path.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_path": relPath})
}

// GetMemberBadgePhoto serves the member's photo with the payment status
// banner stamped on it. Members without a photo get the default avatar.
func (h *MemberHandler) GetMemberBadgePhoto(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		}
		return
	}

	badged := utils.LoadMemberPhotoWithBadge(member.PhotoPath, member.PendingAmount, h.photoBaseDir)

	c.Header("Content-Type", "image/png")
	if err = gg.NewContextForImage(badged).EncodePNG(c.Writer); err != nil {
		utils.LogError(err, "GetMemberBadgePhoto: Failed to encode badge photo for ID "+idStr)
	}
}
