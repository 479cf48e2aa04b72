package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// Service casbin 授权，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载已有策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", "casbin_rule")
	if err != nil {
		return nil, fmt.Errorf("authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz load policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceAdmin 判定管理员能否以 act 访问 obj（路由模板或实际路径均可）
func (s *Service) EnforceAdmin(adminID uint, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(adminSubject(adminID), NormalizeObject(obj), NormalizeAction(act))
}

// BootstrapBuiltinRoles 写入预置角色，已存在的规则会被跳过
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, def := range builtinRoles {
		role := rolePrefix + def.name
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
			return fmt.Errorf("register role %s: %w", role, err)
		}
		for _, parent := range def.inherits {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, rolePrefix+parent); err != nil {
				return fmt.Errorf("inherit %s from %s: %w", role, parent, err)
			}
		}
		for object, action := range def.grants {
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(object), NormalizeAction(action)); err != nil {
				return fmt.Errorf("grant %s %s to %s: %w", action, object, role, err)
			}
		}
	}
	return nil
}

// ListRoles 角色按名称排序，策略按资源、动作排序
func (s *Service) ListRoles() ([]RoleInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	links, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	parents := map[string][]string{}
	for _, link := range links {
		if len(link) < 2 || !strings.HasPrefix(link[0], rolePrefix) {
			continue
		}
		if link[1] == roleAnchor {
			if _, ok := parents[link[0]]; !ok {
				parents[link[0]] = []string{}
			}
			continue
		}
		if strings.HasPrefix(link[1], rolePrefix) {
			parents[link[0]] = append(parents[link[0]], link[1])
		}
	}

	roles := make([]RoleInfo, 0, len(parents))
	for role, inherits := range parents {
		rules, err := s.enforcer.GetFilteredPolicy(0, role)
		if err != nil {
			return nil, fmt.Errorf("role %s policies: %w", role, err)
		}
		sort.Strings(inherits)
		roles = append(roles, RoleInfo{Role: role, Inherits: inherits, Policies: toPolicies(rules)})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Role < roles[j].Role })
	return roles, nil
}

// SetAdminRoles 整体替换管理员角色；任何一个角色未登记都不做修改
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	if adminID == 0 {
		return fmt.Errorf("admin id is required")
	}
	if err := s.ready(); err != nil {
		return err
	}
	names := make([]string, 0, len(roles))
	for _, raw := range roles {
		role, err := NormalizeRole(raw)
		if err != nil {
			return err
		}
		known, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check role %s: %w", role, err)
		}
		if !known {
			return fmt.Errorf("%w: %s", ErrUnknownRole, role)
		}
		names = append(names, role)
	}

	subject := adminSubject(adminID)
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 0, subject); err != nil {
		return fmt.Errorf("clear roles of %s: %w", subject, err)
	}
	for _, role := range names {
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, role); err != nil {
			return fmt.Errorf("assign %s to %s: %w", role, subject, err)
		}
	}
	return nil
}

// GetAdminRoles 管理员直接拥有的角色
func (s *Service) GetAdminRoles(adminID uint) ([]string, error) {
	if adminID == 0 {
		return nil, fmt.Errorf("admin id is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	assigned, err := s.enforcer.GetRolesForUser(adminSubject(adminID))
	if err != nil {
		return nil, fmt.Errorf("roles of admin %d: %w", adminID, err)
	}
	roles := make([]string, 0, len(assigned))
	for _, role := range assigned {
		if strings.HasPrefix(role, rolePrefix) && role != roleAnchor {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

func toPolicies(rules [][]string) []Policy {
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) >= 3 {
			policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
		}
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object != policies[j].Object {
			return policies[i].Object < policies[j].Object
		}
		return policies[i].Action < policies[j].Action
	})
	return policies
}
