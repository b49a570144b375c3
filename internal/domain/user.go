package domain

import "time"

type Account struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	Constituency string    `json:"constituency,omitempty"`
	Roles        []Role    `json:"roles"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// PrimaryRole returns the highest-precedence role held by the account,
// defaulting to MEMBER for legacy rows with no roles recorded.
func (a *Account) PrimaryRole() Role {
	return PrimaryRole(a.Roles, false)
}

// HasRole reports whether the account holds the given role.
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
