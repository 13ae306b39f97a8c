// Package queries contains the read side of the logistics pipeline. Queries
// read straight from the store with SQL and return flat views for dashboards.
// They never take row locks and never go through the aggregates.
package queries

import (
	"strings"

	"morna/internal/pkg/errs"
)

// Role scopes what a dashboard lists. It never changes which mutations are
// allowed.
type Role string

const (
	RoleChina     Role = "china"
	RoleVenezuela Role = "venezuela"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleChina, RoleVenezuela, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// likePattern turns a user supplied substring into an ILIKE pattern that
// matches it literally.
func likePattern(substring string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(substring)
	return "%" + escaped + "%"
}
