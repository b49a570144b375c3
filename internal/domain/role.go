package domain

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleVolunteer Role = "VOLUNTEER"
	RoleMember    Role = "MEMBER"
)

// rolePrecedence orders roles for primary-role derivation. Higher wins.
var rolePrecedence = map[Role]int{
	RoleAdmin:     3,
	RoleVolunteer: 2,
	RoleMember:    1,
}

// PrimaryRole returns the highest-precedence role in roles. When roles is
// empty (legacy records) the fallback is derived from the volunteer flag.
func PrimaryRole(roles []Role, volunteer bool) Role {
	if len(roles) == 0 {
		if volunteer {
			return RoleVolunteer
		}
		return RoleMember
	}
	primary := roles[0]
	for _, r := range roles[1:] {
		if rolePrecedence[r] > rolePrecedence[primary] {
			primary = r
		}
	}
	return primary
}

// RoleStrings converts a role list for use in token claims.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
