// Package authz holds the access-control engine: pure decisions over
// (principal, operation, record) with no store or transport dependencies.
package authz

import (
	"time"

	"github.com/google/uuid"

	"github.com/vaaltic/crm/internal/models"
)

// Scope bounds the records a principal may see in list and aggregate
// queries. It is applied by the repositories at query time, not by
// filtering materialized result sets.
type Scope struct {
	All     bool
	OwnerID string
}

// ScopeFor resolves the visibility scope for a principal: admins see
// everything, everyone else sees only records they created. Unknown
// roles fall through to the narrow scope.
func ScopeFor(u *models.User) Scope {
	switch u.Role {
	case models.RoleAdmin:
		return Scope{All: true}
	case models.RoleCustomer:
		return Scope{OwnerID: u.ID}
	}
	return Scope{OwnerID: u.ID}
}

// Matches reports whether a record created by createdBy is inside the scope.
func (s Scope) Matches(createdBy string) bool {
	return s.All || s.OwnerID == createdBy
}

// CanModify decides update/delete on an existing record: admin, or the
// record's creator. Callers must have established existence first so a
// missing record surfaces as not-found, never as forbidden.
func CanModify(u *models.User, createdBy string) bool {
	if u.Role == models.RoleAdmin {
		return true
	}
	return createdBy == u.ID
}

// Stamp initializes the ownership envelope of a freshly created record.
// The engine performs the stamping itself so a client payload can never
// smuggle in a different created_by.
func Stamp(o *models.Owned, u *models.User, now time.Time) {
	o.ID = uuid.NewString()
	o.CreatedBy = u.ID
	o.CreatedAt = now
	o.UpdatedAt = now
}
