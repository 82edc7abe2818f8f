package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-api/internal/domain"
)

// Permission etiqueta de capacidad; conjunto cerrado.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions en el orden en que se muestran.
var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// ParsePermission valida una etiqueta contra el conjunto cerrado.
func ParsePermission(s string) (Permission, error) {
	for _, p := range AllPermissions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, s)
}

// ParsePermissions valida y deduplica conservando el orden.
func ParsePermissions(labels []string) ([]Permission, error) {
	out := make([]Permission, 0, len(labels))
	seen := make(map[Permission]struct{}, len(labels))
	for _, l := range labels {
		p, err := ParsePermission(l)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// HasAnyPermission es true si el usuario tiene al menos uno de required.
func (u *User) HasAnyPermission(required ...Permission) bool {
	if u == nil {
		return false
	}
	for _, have := range u.Permissions {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// CheckPermission falla con domain.ErrPermissionDenied si los permisos del usuario
// no se intersectan con required (OR lógico, no AND).
func CheckPermission(u *User, required ...Permission) error {
	if u.HasAnyPermission(required...) {
		return nil
	}
	return fmt.Errorf("%w Required: %s", domain.ErrPermissionDenied, joinPermissions(required))
}

func joinPermissions(ps []Permission) string {
	s := make([]string, len(ps))
	for i, p := range ps {
		s[i] = string(p)
	}
	return strings.Join(s, ", ")
}
