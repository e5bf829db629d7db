package repositories

import (
	"fmt"

	"github.com/vaaltic/crm/internal/authz"
)

// scopeClause renders a visibility scope as a WHERE fragment. Queries are
// written as `WHERE 1=1` so the fragment composes with other filters; an
// all-records scope contributes nothing.
func scopeClause(scope authz.Scope, argn int) (string, []interface{}) {
	if scope.All {
		return "", nil
	}
	return fmt.Sprintf(" AND created_by = $%d", argn), []interface{}{scope.OwnerID}
}
