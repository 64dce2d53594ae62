package service

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"legalbridge-backend/models"
)

const (
	// MinDescriptionLength is the shortest description that passes the details step
	MinDescriptionLength = 50

	mediumComplexityLength = 200
	highComplexityLength   = 500
)

// DescriptionLength counts characters, not bytes
func DescriptionLength(description string) int {
	return utf8.RuneCountInString(description)
}

// EstimateComplexity derives the display-only complexity label
func EstimateComplexity(urgency models.Urgency, description string) models.Complexity {
	n := DescriptionLength(description)
	if urgency == models.UrgencyUrgent || n > highComplexityLength {
		return models.ComplexityHigh
	}
	if n > mediumComplexityLength {
		return models.ComplexityMedium
	}
	return models.ComplexityLow
}

// StepIssues returns the inline messages that block leaving step. Steps
// without a predicate return nil.
func StepIssues(step models.Step, draft models.CaseDraft) *ValidationError {
	verr := NewValidationError()
	switch step {
	case models.StepCategory:
		if draft.CategoryID == "" {
			verr.Set("category_id", "Please select a case category")
		}
		if draft.Subcategory == "" {
			verr.Set("subcategory", "Please select a subcategory")
		}
		if draft.City == "" {
			verr.Set("city", "City is required")
		}
		if draft.Region == "" {
			verr.Set("region", "State is required")
		}
	case models.StepDetails:
		if DescriptionLength(draft.Description) < MinDescriptionLength {
			verr.Set("description", "Description must be at least "+strconv.Itoa(MinDescriptionLength)+" characters")
		}
		if draft.Timeline == "" {
			verr.Set("timeline", "Timeline is required")
		}
		if draft.DesiredOutcome == "" {
			verr.Set("desired_outcome", "Desired outcome is required")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// DraftIssues returns the first step before review whose predicate fails,
// or StepReview with nil issues when the draft is complete.
func DraftIssues(draft models.CaseDraft) (models.Step, *ValidationError) {
	for _, step := range []models.Step{models.StepCategory, models.StepDetails} {
		if issues := StepIssues(step, draft); issues != nil {
			return step, issues
		}
	}
	return models.StepReview, nil
}

// CanAdvance reports whether the current step's predicate holds. At the
// review step every earlier predicate must still hold; leaving it also
// requires consent.
func CanAdvance(w models.Wizard) bool {
	switch w.Step {
	case models.StepConfirmation:
		return false
	case models.StepReview:
		_, issues := DraftIssues(w.Draft)
		return issues == nil
	}
	return StepIssues(w.Step, w.Draft) == nil
}

// Advance moves the wizard one step forward. From the review step it returns
// ErrConsentRequired; use Confirm once the gate is accepted.
func Advance(w models.Wizard) (models.Wizard, error) {
	switch w.Step {
	case models.StepCategory, models.StepDetails:
		if issues := StepIssues(w.Step, w.Draft); issues != nil {
			return w, &StepError{issues}
		}
		w.Step++
		return w, nil
	case models.StepReview:
		if _, issues := DraftIssues(w.Draft); issues != nil {
			return w, &StepError{issues}
		}
		return w, ErrConsentRequired
	default:
		return w, ErrWizardComplete
	}
}

// Retreat moves the wizard one step back without re-validating. The first
// step stays where it is.
func Retreat(w models.Wizard) (models.Wizard, error) {
	if w.Step == models.StepConfirmation {
		return w, ErrWizardComplete
	}
	if w.Step > models.StepCategory {
		w.Step--
	}
	return w, nil
}

// Confirm moves a reviewed wizard to the confirmation step
func Confirm(w models.Wizard, record models.ConsentRecord, referenceCode string) (models.Wizard, error) {
	if w.Step == models.StepConfirmation {
		return w, ErrWizardComplete
	}
	if w.Step != models.StepReview {
		return w, ErrNotAtReview
	}
	if !AllAffirmed(record.Affirmations) {
		return w, ErrConsentIncomplete
	}
	if _, issues := DraftIssues(w.Draft); issues != nil {
		return w, &StepError{issues}
	}
	w.Step = models.StepConfirmation
	w.ReferenceCode = referenceCode
	return w, nil
}

// ReferenceCode renders t's millisecond timestamp in base 36. Two calls in
// the same millisecond return the same code.
func ReferenceCode(t time.Time) string {
	return "LB-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// DraftUpdate carries the fields a PUT changes; nil fields are left alone
type DraftUpdate struct {
	CategoryID     *string         `json:"category_id"`
	Subcategory    *string         `json:"subcategory"`
	Urgency        *models.Urgency `json:"urgency"`
	City           *string         `json:"city"`
	Region         *string         `json:"region"`
	Description    *string         `json:"description"`
	Timeline       *string         `json:"timeline"`
	DesiredOutcome *string         `json:"desired_outcome"`
}

// ApplyUpdate returns draft with upd applied. Choosing a category clears the
// subcategory unless the same update picks one.
func ApplyUpdate(draft models.CaseDraft, upd DraftUpdate) (models.CaseDraft, error) {
	verr := NewValidationError()

	if upd.CategoryID != nil {
		if *upd.CategoryID == "" {
			draft.CategoryID = ""
			draft.Subcategory = ""
		} else if _, ok := models.FindCategory(*upd.CategoryID); !ok {
			verr.Set("category_id", "Unknown case category")
		} else {
			draft.CategoryID = *upd.CategoryID
			draft.Subcategory = ""
		}
	}
	if upd.Subcategory != nil {
		sub := *upd.Subcategory
		category, ok := models.FindCategory(draft.CategoryID)
		switch {
		case sub == "":
			draft.Subcategory = ""
		case !ok:
			verr.Set("subcategory", "Select a category first")
		case !category.HasSubcategory(sub):
			verr.Set("subcategory", "Subcategory does not belong to "+category.Name)
		default:
			draft.Subcategory = sub
		}
	}
	if upd.Urgency != nil {
		if !upd.Urgency.Valid() {
			verr.Set("urgency", "Urgency must be normal or urgent")
		} else {
			draft.Urgency = *upd.Urgency
		}
	}
	if upd.City != nil {
		draft.City = *upd.City
	}
	if upd.Region != nil {
		if *upd.Region != "" && !isRegion(*upd.Region) {
			verr.Set("region", "Unknown state")
		} else {
			draft.Region = *upd.Region
		}
	}
	if upd.Description != nil {
		draft.Description = *upd.Description
	}
	if upd.Timeline != nil {
		draft.Timeline = *upd.Timeline
	}
	if upd.DesiredOutcome != nil {
		draft.DesiredOutcome = *upd.DesiredOutcome
	}

	if err := verr.OrNil(); err != nil {
		return draft, err
	}
	return draft, nil
}

func isRegion(name string) bool {
	for _, r := range models.Regions {
		if r == name {
			return true
		}
	}
	return false
}
