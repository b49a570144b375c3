package domain

import "time"

// AccessCode is the short single-use credential minted when an application is
// approved. Email is bound at mint time and never changes; the first element
// of Roles is the primary role assigned at mint time.
type AccessCode struct {
	Code         string     `json:"code"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Constituency string     `json:"constituency,omitempty"`
	Roles        []Role     `json:"roles"`
	ExpiresOn    time.Time  `json:"expires_on"`
	Used         bool       `json:"used"`
	UsedOn       *time.Time `json:"used_on,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
}

// Redemption is the identity and role data handed to account creation after a
// code passes validation.
type Redemption struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Constituency string `json:"constituency,omitempty"`
	Role         Role   `json:"role"`
	Roles        []Role `json:"roles"`
}
