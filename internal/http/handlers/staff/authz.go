package staff

import (
	"net/url"
	"strings"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/models"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetStaffRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前员工权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetStaffRoles(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetStaffPolicies(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	isManager := false
	if value, exists := c.Get("staff_is_manager"); exists {
		if flag, typeOK := value.(bool); typeOK {
			isManager = flag
		}
	}

	response.Success(c, gin.H{
		"staff_id":   staffID,
		"is_manager": isManager,
		"roles":      roles,
		"policies":   policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// ListAuthzStaff 获取员工列表及各自角色
func (h *Handler) ListAuthzStaff(c *gin.Context) {
	staffList, err := h.StaffRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	items := make([]gin.H, 0, len(staffList))
	for _, member := range staffList {
		roles, roleErr := h.AuthzService.GetStaffRoles(member.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "error.config_fetch_failed", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            member.ID,
			"username":      member.Username,
			"is_manager":    member.IsManager,
			"last_login_at": member.LastLoginAt,
			"created_at":    member.CreatedAt,
			"roles":         roles,
		})
	}

	response.Success(c, items)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logger.Infow("staff_authz_role_created",
		"operator_staff_id", currentStaffID(c),
		"role", role,
	)

	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logger.Infow("staff_authz_role_deleted",
		"operator_staff_id", currentStaffID(c),
		"role", role,
	)

	response.Success(c, nil)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logger.Infow("staff_authz_policy_granted",
		"operator_staff_id", currentStaffID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logger.Infow("staff_authz_policy_revoked",
		"operator_staff_id", currentStaffID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// GetAuthzStaffRoles 获取指定员工的角色
func (h *Handler) GetAuthzStaffRoles(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.StaffRepo.GetByID(staffID); err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	roles, err := h.AuthzService.GetStaffRoles(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzStaffRoles 设置指定员工的角色
func (h *Handler) SetAuthzStaffRoles(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	member, err := h.StaffRepo.GetByID(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if member == nil {
		respondError(c, response.CodeBadRequest, "error.staff_id_invalid", nil)
		return
	}

	var req authzSetStaffRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetStaffRoles(staffID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logger.Infow("staff_authz_staff_roles_updated",
		"operator_staff_id", currentStaffID(c),
		"target_staff_id", staffID,
		"roles", req.Roles,
	)

	response.Success(c, nil)
}

// CreateStaffRequest 新增员工账号请求
type CreateStaffRequest struct {
	Username  string   `json:"username" binding:"required"`
	Password  string   `json:"password" binding:"required"`
	IsManager bool     `json:"is_manager"`
	Roles     []string `json:"roles"`
}

// CreateStaff 新增员工账号
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ValidatePassword(req.Password); err != nil {
		respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		return
	}
	existing, err := h.StaffRepo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if existing != nil {
		respondError(c, response.CodeBadRequest, "error.username_exists", nil)
		return
	}

	hash, err := h.AuthService.HashPassword(req.Password)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	member := &models.Staff{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		IsManager:    req.IsManager,
	}
	if err := h.StaffRepo.Create(member); err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetStaffRoles(member.ID, req.Roles); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	logger.Infow("staff_account_created",
		"operator_staff_id", currentStaffID(c),
		"target_staff_id", member.ID,
		"username", member.Username,
	)

	response.Success(c, gin.H{
		"id":         member.ID,
		"username":   member.Username,
		"is_manager": member.IsManager,
		"roles":      req.Roles,
	})
}

func currentStaffID(c *gin.Context) uint {
	if value, exists := c.Get("staff_id"); exists {
		switch typed := value.(type) {
		case uint:
			return typed
		case int:
			if typed > 0 {
				return uint(typed)
			}
		case float64:
			if typed > 0 {
				return uint(typed)
			}
		}
	}
	return 0
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
