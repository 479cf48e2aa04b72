package authz

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return svc
}

func allowed(t *testing.T, svc *Service, adminID uint, obj, act string) bool {
	t.Helper()
	ok, err := svc.EnforceAdmin(adminID, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s: %v", act, obj, err)
	}
	return ok
}

func TestBootstrapBuiltinRolesIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	var names []string
	for _, r := range roles {
		names = append(names, r.Role)
	}
	if want := []string{"role:content_editor", "role:readonly_auditor", "role:user_manager"}; !slices.Equal(names, want) {
		t.Fatalf("roles want %v got %v", want, names)
	}
	if !slices.Equal(roles[0].Inherits, []string{"role:readonly_auditor"}) {
		t.Fatalf("content_editor should inherit readonly_auditor, got %v", roles[0].Inherits)
	}
}

func TestContentEditorPermissions(t *testing.T) {
	svc := newTestService(t)
	if err := svc.SetAdminRoles(1, []string{RoleContentEditor}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	grants := map[string]bool{
		"GET /api/v1/admin/recipes":              true,
		"delete /api/v1/admin/recipes/42":        true,
		"PUT /api/v1/admin/tags/7":               true,
		"POST /api/v1/admin/ingredients/import":  true,
		"PUT /api/v1/admin/users/batch-status":   false,
		"PUT /api/v1/admin/authz/admins/1/roles": false,
	}
	for req, want := range grants {
		act, obj, _ := strings.Cut(req, " ")
		if got := allowed(t, svc, 1, obj, act); got != want {
			t.Fatalf("%s want %v got %v", req, want, got)
		}
	}
}

func TestSetAdminRolesReplacesPrevious(t *testing.T) {
	svc := newTestService(t)
	for _, role := range []string{RoleContentEditor, RoleUserManager} {
		if err := svc.SetAdminRoles(2, []string{role}); err != nil {
			t.Fatalf("set %s: %v", role, err)
		}
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles: %v", err)
	}
	if !slices.Equal(roles, []string{"role:user_manager"}) {
		t.Fatalf("want only user_manager, got %v", roles)
	}
	if allowed(t, svc, 2, "/admin/tags/1", "DELETE") {
		t.Fatalf("content_editor grant should be gone")
	}
	if !allowed(t, svc, 2, "/admin/users/batch-status", "PUT") {
		t.Fatalf("user_manager grant missing")
	}
}

func TestSetAdminRolesRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)
	if err := svc.SetAdminRoles(3, []string{"finance"}); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("want ErrUnknownRole got %v", err)
	}
	if err := svc.SetAdminRoles(3, []string{"  "}); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("want ErrRoleRequired got %v", err)
	}
}

func TestNormalizeObject(t *testing.T) {
	for in, want := range map[string]string{
		"/api/v1/admin/recipes/:id": "/admin/recipes/:id",
		"/admin/recipes/:id":        "/admin/recipes/:id",
		"admin/tags":                "/admin/tags",
		"/api/v1":                   "/",
		"":                          "/",
	} {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) want %q got %q", in, want, got)
		}
	}
}
