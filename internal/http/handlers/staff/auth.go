package staff

import (
	"errors"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffLoginRequest 员工登录请求
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLogin 员工登录
func (h *Handler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	staff, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}

	response.Success(c, gin.H{
		"staff": gin.H{
			"id":         staff.ID,
			"username":   staff.Username,
			"is_manager": staff.IsManager,
		},
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetCurrentStaff 获取当前员工信息
func (h *Handler) GetCurrentStaff(c *gin.Context) {
	id, ok := getStaffID(c)
	if !ok {
		return
	}

	staff, err := h.StaffRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.staff_fetch_failed", err)
		return
	}
	if staff == nil {
		respondError(c, response.CodeNotFound, "error.staff_not_found", nil)
		return
	}

	roles, err := h.AuthzService.GetStaffRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.staff_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"id":            staff.ID,
		"username":      staff.Username,
		"is_manager":    staff.IsManager,
		"roles":         roles,
		"last_login_at": staff.LastLoginAt,
	})
}

// ChangeStaffPasswordRequest 员工改密请求
type ChangeStaffPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeStaffPassword 员工登录态修改密码
func (h *Handler) ChangeStaffPassword(c *gin.Context) {
	id, ok := getStaffID(c)
	if !ok {
		return
	}
	var req ChangeStaffPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.staff_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}
