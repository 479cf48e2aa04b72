package authz

import (
	"errors"
	"fmt"
	"strings"
)

// casbin 模型：角色可继承，资源按 keyMatch2 匹配路由模板，动作 * 代表全部方法
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

const (
	apiPrefix  = "/api/v1"
	rolePrefix = "role:"
	// roleAnchor 每个已登记角色都挂在该锚点下，用于区分“角色”与“管理员主体”
	roleAnchor = "role:__anchor__"
)

var (
	ErrUnavailable  = errors.New("authz service unavailable")
	ErrUnknownRole  = errors.New("unknown role")
	ErrRoleRequired = errors.New("role is required")
)

// 预置角色
const (
	RoleReadonlyAuditor = "readonly_auditor"
	RoleContentEditor   = "content_editor"
	RoleUserManager     = "user_manager"
)

// Policy 单条授权策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// RoleInfo 角色、直接父角色与直接策略
type RoleInfo struct {
	Role     string   `json:"role"`
	Inherits []string `json:"inherits"`
	Policies []Policy `json:"policies"`
}

type roleSpec struct {
	name     string
	inherits []string
	grants   map[string]string // 资源 -> 动作
}

// builtinRoles 审计只读；内容编辑维护菜谱、标签与食材；用户管理可批量停用账号
var builtinRoles = []roleSpec{
	{
		name:   RoleReadonlyAuditor,
		grants: map[string]string{"/admin/*": "GET"},
	},
	{
		name:     RoleContentEditor,
		inherits: []string{RoleReadonlyAuditor},
		grants: map[string]string{
			"/admin/recipes/:id":        "DELETE",
			"/admin/tags":               "POST",
			"/admin/tags/:id":           "*",
			"/admin/ingredients":        "POST",
			"/admin/ingredients/:id":    "*",
			"/admin/ingredients/import": "POST",
		},
	},
	{
		name:     RoleUserManager,
		inherits: []string{RoleReadonlyAuditor},
		grants:   map[string]string{"/admin/users/batch-status": "PUT"},
	},
}

func adminSubject(adminID uint) string {
	return fmt.Sprintf("admin:%d", adminID)
}

// NormalizeRole 空格替换为下划线并补齐 role: 前缀
func NormalizeRole(role string) (string, error) {
	name := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(role), " ", "_"), rolePrefix)
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 资源统一为不含 /api/v1 前缀的绝对路径
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == apiPrefix {
		return "/"
	}
	if rest, ok := strings.CutPrefix(path, apiPrefix+"/"); ok {
		return "/" + rest
	}
	return path
}

// NormalizeAction HTTP 方法大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
