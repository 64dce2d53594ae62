package models

// Urgency represents how pressing a case is
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// Valid reports whether u is a known urgency level
func (u Urgency) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent
}

// Complexity is the derived, display-only difficulty estimate of a case
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Step is the wizard's step pointer
type Step int

const (
	StepCategory Step = iota + 1
	StepDetails
	StepReview
	StepConfirmation
)

// CaseDraft holds the wizard's in-progress fields
type CaseDraft struct {
	// Step 1: category & location
	CategoryID  string  `json:"category_id"`
	Subcategory string  `json:"subcategory"`
	Urgency     Urgency `json:"urgency"`
	City        string  `json:"city"`
	Region      string  `json:"region"`

	// Step 2: details
	Description    string         `json:"description"`
	Timeline       string         `json:"timeline"`
	DesiredOutcome string         `json:"desired_outcome"`
	Files          []AttachedFile `json:"files,omitempty"`
}

// NewCaseDraft returns an empty draft with normal urgency
func NewCaseDraft() CaseDraft {
	return CaseDraft{
		Urgency: UrgencyNormal,
		Files:   []AttachedFile{},
	}
}
