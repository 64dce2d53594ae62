package models

import (
	"time"

	"github.com/google/uuid"
)

// Wizard is the explicit state of the case-submission flow
type Wizard struct {
	Step          Step      `json:"step"`
	Draft         CaseDraft `json:"draft"`
	ReferenceCode string    `json:"reference_code,omitempty"`
}

// NewWizard returns a wizard at the first step with an empty draft
func NewWizard() Wizard {
	return Wizard{Step: StepCategory, Draft: NewCaseDraft()}
}

// CaseSession is a wizard bound to one browser page session
type CaseSession struct {
	ID        uuid.UUID  `json:"id"`
	Wizard    Wizard     `json:"wizard"`
	GateID    *uuid.UUID `json:"gate_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GatePurpose selects what happens when a consent gate is accepted
type GatePurpose string

const (
	PurposeCaseSubmission        GatePurpose = "case_submission"
	PurposeContributorConnection GatePurpose = "contributor_connection"
	PurposeContributorOnboarding GatePurpose = "contributor_onboarding"
)

// ConsentGate is an open consent modal awaiting three affirmations
type ConsentGate struct {
	ID           uuid.UUID               `json:"id"`
	Role         ConsentRole             `json:"role"`
	Purpose      GatePurpose             `json:"purpose"`
	SubjectID    string                  `json:"subject_id,omitempty"` // case session id or contributor id
	Affirmations [ConsentPointCount]bool `json:"affirmations"`
	CreatedAt    time.Time               `json:"created_at"`
}
