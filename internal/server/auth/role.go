package auth

import "github.com/avoronov/travelog/internal/common"

// Role is the closed set of account roles. Anything outside these four values
// is rejected at parse time, so the rest of the code can match exhaustively.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleReviewer      Role = "reviewer"
	RoleUser          Role = "user"
	RoleVisitor       Role = "visitor"
)

// ParseRole converts a wire/storage string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator:
		return RoleAdministrator, nil
	case RoleReviewer:
		return RoleReviewer, nil
	case RoleUser:
		return RoleUser, nil
	case RoleVisitor:
		return RoleVisitor, nil
	default:
		return "", common.ErrorInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
