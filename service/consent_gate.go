package service

import (
	"time"

	"github.com/google/uuid"

	"legalbridge-backend/models"
)

// NewGate opens a fresh gate with every affirmation unchecked
func NewGate(role models.ConsentRole, purpose models.GatePurpose, subjectID string, now time.Time) models.ConsentGate {
	return models.ConsentGate{
		ID:        uuid.New(),
		Role:      role,
		Purpose:   purpose,
		SubjectID: subjectID,
		CreatedAt: now,
	}
}

// AllAffirmed reports whether every affirmation is checked
func AllAffirmed(affirmations [models.ConsentPointCount]bool) bool {
	for _, ok := range affirmations {
		if !ok {
			return false
		}
	}
	return true
}

// CanAccept reports whether the gate's accept action is enabled
func CanAccept(g models.ConsentGate) bool {
	return AllAffirmed(g.Affirmations)
}

// SetAffirmation checks or unchecks one affirmation
func SetAffirmation(g models.ConsentGate, index int, checked bool) (models.ConsentGate, error) {
	if index < 0 || index >= models.ConsentPointCount {
		return g, ErrAffirmationOutOfRange
	}
	g.Affirmations[index] = checked
	return g, nil
}

// AcceptGate invokes onAccept with the consent record when every affirmation
// holds and returns ErrConsentIncomplete otherwise.
func AcceptGate(g models.ConsentGate, now time.Time, onAccept func(models.ConsentRecord) error) error {
	if !CanAccept(g) {
		return ErrConsentIncomplete
	}
	return onAccept(models.ConsentRecord{
		Role:         g.Role,
		Affirmations: g.Affirmations,
		AcceptedAt:   now,
	})
}

// CancelGate discards the checkbox state and invokes onClose
func CancelGate(g models.ConsentGate, onClose func()) models.ConsentGate {
	g.Affirmations = [models.ConsentPointCount]bool{}
	if onClose != nil {
		onClose()
	}
	return g
}

// GateView is the gate as the consent modal renders it
type GateView struct {
	ID        uuid.UUID                                     `json:"id"`
	Role      models.ConsentRole                            `json:"role"`
	Purpose   models.GatePurpose                            `json:"purpose"`
	Notice    string                                        `json:"notice"`
	Points    [models.ConsentPointCount]models.ConsentPoint `json:"points"`
	Checked   [models.ConsentPointCount]bool                `json:"checked"`
	CanAccept bool                                          `json:"can_accept"`
}

// ViewGate resolves the role's wording once for rendering
func ViewGate(g models.ConsentGate) GateView {
	return GateView{
		ID:        g.ID,
		Role:      g.Role,
		Purpose:   g.Purpose,
		Notice:    models.ConsentNotice,
		Points:    g.Role.Points(),
		Checked:   g.Affirmations,
		CanAccept: CanAccept(g),
	}
}
