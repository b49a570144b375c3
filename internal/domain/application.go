package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusUnreviewed ApplicationStatus = "UNREVIEWED"
	ApplicationStatusContacted  ApplicationStatus = "CONTACTED"
	ApplicationStatusApproved   ApplicationStatus = "APPROVED"
	ApplicationStatusRejected   ApplicationStatus = "REJECTED"
)

// applicationTransitions lists the admin-triggered transitions allowed from
// each status. APPROVED is terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusUnreviewed: {ApplicationStatusContacted, ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusContacted:  {ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusUnreviewed},
	ApplicationStatusApproved:   {},
	ApplicationStatusRejected:   {ApplicationStatusUnreviewed, ApplicationStatusContacted},
}

// CanTransition reports whether an application may move from one status to
// another.
func CanTransition(from, to ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s ApplicationStatus) bool {
	_, ok := applicationTransitions[s]
	return ok
}

// PendingApplication is a membership or volunteer submission awaiting an
// admin decision. The volunteer-only fields are populated iff Volunteer is
// true; the boolean pointers distinguish "not provided" from an explicit
// false.
type PendingApplication struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Phone        string   `json:"phone,omitempty"`
	Constituency string   `json:"constituency,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	Volunteer    bool     `json:"volunteer"`
	Newsletter   bool     `json:"newsletter"`

	SocialMediaHandle string   `json:"social_media_handle,omitempty"`
	IsBritishCitizen  *bool    `json:"is_british_citizen,omitempty"`
	LivesInUK         *bool    `json:"lives_in_uk,omitempty"`
	BriefBio          string   `json:"brief_bio,omitempty"`
	BriefCV           string   `json:"brief_cv,omitempty"`
	OtherAffiliations string   `json:"other_affiliations,omitempty"`
	InterestedIn      []string `json:"interested_in,omitempty"`
	CanContribute     []string `json:"can_contribute,omitempty"`
	SignedNDA         *bool    `json:"signed_nda,omitempty"`
	GDPRConsent       *bool    `json:"gdpr_consent,omitempty"`

	Status      ApplicationStatus `json:"status"`
	ReviewedBy  *int32            `json:"reviewed_by,omitempty"`
	ReviewNotes string            `json:"review_notes,omitempty"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Resolved reports whether the application has reached a terminal decision.
func (a *PendingApplication) Resolved() bool {
	return a.Status == ApplicationStatusApproved || a.Status == ApplicationStatusRejected
}
