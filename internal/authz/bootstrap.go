package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
//
// 店长（IsManager）在中间件层直接放行，不依赖这里的策略。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/staff/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "kitchen",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/staff/orders", Action: "GET"},
				{Object: "/staff/orders/:id", Action: "GET"},
				{Object: "/staff/orders/:id/status", Action: "PATCH"},
				{Object: "/staff/products", Action: "*"},
				{Object: "/staff/products/:id", Action: "*"},
				{Object: "/staff/categories", Action: "*"},
				{Object: "/staff/categories/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "dispatch",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/staff/orders", Action: "GET"},
				{Object: "/staff/orders/:id", Action: "GET"},
				{Object: "/staff/orders/:id/status", Action: "PATCH"},
				{Object: "/staff/orders/:id/courier", Action: "PUT"},
				{Object: "/staff/orders/:id/tracking", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
