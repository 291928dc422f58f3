// File: internal/group/policy.go
package group

import (
	"tigerbites_backend/internal/config"

	"github.com/google/uuid"
)

// IsMember reports whether userID holds any membership in the loaded group.
func IsMember(userID uuid.UUID, groupModel *Group) bool {
	for _, m := range groupModel.Memberships {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsLeader reports whether userID holds the leader role in the loaded group.
func IsLeader(userID uuid.UUID, groupModel *Group) bool {
	for _, m := range groupModel.Memberships {
		if m.UserID == userID && m.Role == RoleLeader {
			return true
		}
	}
	return false
}

// allowedByPolicy checks a per-action membership policy against the caller.
// Unrecognized values fall back to the member check; config validation keeps
// them out in practice.
func allowedByPolicy(policy string, userID uuid.UUID, groupModel *Group) bool {
	if policy == config.PolicyLeaderOnly {
		return IsLeader(userID, groupModel)
	}
	return IsMember(userID, groupModel)
}
