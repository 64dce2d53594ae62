package models

import "time"

// ConsentRole selects the wording of a consent gate
type ConsentRole string

const (
	ConsentSeeker      ConsentRole = "seeker"
	ConsentContributor ConsentRole = "contributor"
)

// Valid reports whether r has wording defined
func (r ConsentRole) Valid() bool {
	_, ok := consentPoints[r]
	return ok
}

// ConsentPoint is one affirmation a user has to check
type ConsentPoint struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ConsentPointCount is the number of affirmations every gate presents
const ConsentPointCount = 3

var consentPoints = map[ConsentRole][ConsentPointCount]ConsentPoint{
	ConsentSeeker: {
		{ID: "seeker-1", Label: "I understand this is NOT legal representation", Description: "LegalBridge connects you with volunteers for guidance and case preparation only."},
		{ID: "seeker-2", Label: "I will not share false information", Description: "All information provided must be truthful to the best of my knowledge."},
		{ID: "seeker-3", Label: "I consent to sharing anonymized case details", Description: "My personal identity will remain hidden; only case-relevant information will be shared."},
	},
	ConsentContributor: {
		{ID: "contributor-1", Label: "I will NOT provide legal advice for court matters", Description: "I understand that court representation and legal verdicts are outside the scope of this platform."},
		{ID: "contributor-2", Label: "I will maintain confidentiality", Description: "All case details and user information shared will remain confidential."},
		{ID: "contributor-3", Label: "I will escalate complex cases responsibly", Description: "If a case requires professional legal intervention, I will recommend proper escalation."},
	},
}

// Points returns the role's affirmation wording
func (r ConsentRole) Points() [ConsentPointCount]ConsentPoint {
	return consentPoints[r]
}

// ConsentNotice is shown above the affirmations for every role
const ConsentNotice = "This platform facilitates legal guidance and case preparation. It does not replace professional legal representation."

// ConsentRecord is handed to the gate's completion once all affirmations hold
type ConsentRecord struct {
	Role         ConsentRole             `json:"role"`
	Affirmations [ConsentPointCount]bool `json:"affirmations"`
	AcceptedAt   time.Time               `json:"accepted_at"`
}
