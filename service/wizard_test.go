package service

import (
	"strings"
	"testing"
	"time"

	"legalbridge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEstimateComplexity(t *testing.T) {
	tests := []struct {
		name    string
		urgency models.Urgency
		length  int
		want    models.Complexity
	}{
		{"urgent short", models.UrgencyUrgent, 10, models.ComplexityHigh},
		{"normal empty", models.UrgencyNormal, 0, models.ComplexityLow},
		{"normal 200", models.UrgencyNormal, 200, models.ComplexityLow},
		{"normal 201", models.UrgencyNormal, 201, models.ComplexityMedium},
		{"normal 500", models.UrgencyNormal, 500, models.ComplexityMedium},
		{"normal 501", models.UrgencyNormal, 501, models.ComplexityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateComplexity(tt.urgency, strings.Repeat("a", tt.length))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptionLengthCountsRunes(t *testing.T) {
	assert.Equal(t, 5, DescriptionLength("héllo"))
	assert.Equal(t, 50, DescriptionLength(strings.Repeat("é", 50)))
}

func stepOneDraft() models.CaseDraft {
	d := models.NewCaseDraft()
	d.CategoryID = "rent"
	d.Subcategory = "Eviction Notice"
	d.City = "Pune"
	d.Region = "Maharashtra"
	return d
}

func TestAdvance_StepOne(t *testing.T) {
	t.Run("complete location advances", func(t *testing.T) {
		w := models.Wizard{Step: models.StepCategory, Draft: stepOneDraft()}
		require.True(t, CanAdvance(w))

		next, err := Advance(w)
		require.NoError(t, err)
		assert.Equal(t, models.StepDetails, next.Step)
	})

	t.Run("missing region blocks", func(t *testing.T) {
		d := stepOneDraft()
		d.Region = ""
		w := models.Wizard{Step: models.StepCategory, Draft: d}
		assert.False(t, CanAdvance(w))

		next, err := Advance(w)
		require.ErrorIs(t, err, ErrStepBlocked)
		assert.Equal(t, models.StepCategory, next.Step)

		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Contains(t, stepErr.Fields, "region")
		assert.Len(t, stepErr.Fields, 1)
	})
}

func TestAdvance_StepTwoDescriptionBoundary(t *testing.T) {
	d := stepOneDraft()
	d.Timeline = "Since last month"
	d.DesiredOutcome = "Stay in the flat"

	d.Description = strings.Repeat("x", 49)
	w := models.Wizard{Step: models.StepDetails, Draft: d}
	assert.False(t, CanAdvance(w))
	_, err := Advance(w)
	assert.ErrorIs(t, err, ErrStepBlocked)

	w.Draft.Description = strings.Repeat("x", 50)
	assert.True(t, CanAdvance(w))
	next, err := Advance(w)
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, next.Step)
}

func reviewedDraft() models.CaseDraft {
	d := stepOneDraft()
	d.Description = strings.Repeat("x", MinDescriptionLength)
	d.Timeline = "Since last month"
	d.DesiredOutcome = "Stay in the flat"
	return d
}

func TestAdvance_ReviewNeedsConsent(t *testing.T) {
	w := models.Wizard{Step: models.StepReview, Draft: reviewedDraft()}
	assert.True(t, CanAdvance(w))
	next, err := Advance(w)
	assert.ErrorIs(t, err, ErrConsentRequired)
	assert.Equal(t, models.StepReview, next.Step)

	_, err = Advance(models.Wizard{Step: models.StepConfirmation})
	assert.ErrorIs(t, err, ErrWizardComplete)
}

func TestRetreat(t *testing.T) {
	w, err := Retreat(models.Wizard{Step: models.StepCategory})
	require.NoError(t, err)
	assert.Equal(t, models.StepCategory, w.Step)

	// Going back never re-validates
	w, err = Retreat(models.Wizard{Step: models.StepReview, Draft: models.NewCaseDraft()})
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, w.Step)

	_, err = Retreat(models.Wizard{Step: models.StepConfirmation})
	assert.ErrorIs(t, err, ErrWizardComplete)
}

func TestConfirm(t *testing.T) {
	all := models.ConsentRecord{Affirmations: [3]bool{true, true, true}}

	w, err := Confirm(models.Wizard{Step: models.StepReview, Draft: reviewedDraft()}, all, "LB-ABC")
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmation, w.Step)
	assert.Equal(t, "LB-ABC", w.ReferenceCode)

	_, err = Confirm(models.Wizard{Step: models.StepDetails}, all, "LB-ABC")
	assert.ErrorIs(t, err, ErrNotAtReview)

	_, err = Confirm(models.Wizard{Step: models.StepReview, Draft: reviewedDraft()}, models.ConsentRecord{Affirmations: [3]bool{true, false, true}}, "LB-ABC")
	assert.ErrorIs(t, err, ErrConsentIncomplete)

	short := reviewedDraft()
	short.Description = "short"
	w, err = Confirm(models.Wizard{Step: models.StepReview, Draft: short}, all, "LB-ABC")
	assert.ErrorIs(t, err, ErrStepBlocked)
	assert.Equal(t, models.StepReview, w.Step)
	assert.Empty(t, w.ReferenceCode)
}

func TestReviewRechecksEarlierSteps(t *testing.T) {
	d := reviewedDraft()
	d.Region = ""
	w := models.Wizard{Step: models.StepReview, Draft: d}
	assert.False(t, CanAdvance(w))

	step, issues := DraftIssues(d)
	assert.Equal(t, models.StepCategory, step)
	require.NotNil(t, issues)
	assert.Contains(t, issues.Fields, "region")

	_, err := Advance(w)
	assert.ErrorIs(t, err, ErrStepBlocked)

	step, issues = DraftIssues(reviewedDraft())
	assert.Equal(t, models.StepReview, step)
	assert.Nil(t, issues)
}

func TestReferenceCode(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	assert.Equal(t, "LB-LOYW3V28", ReferenceCode(ts))
	assert.Equal(t, ReferenceCode(ts), ReferenceCode(ts.Add(500*time.Microsecond)))
}

func TestApplyUpdate(t *testing.T) {
	t.Run("category change clears subcategory", func(t *testing.T) {
		d, err := ApplyUpdate(stepOneDraft(), DraftUpdate{CategoryID: strPtr("employment")})
		require.NoError(t, err)
		assert.Equal(t, "employment", d.CategoryID)
		assert.Empty(t, d.Subcategory)
	})

	t.Run("category and subcategory together", func(t *testing.T) {
		d, err := ApplyUpdate(models.NewCaseDraft(), DraftUpdate{
			CategoryID:  strPtr("employment"),
			Subcategory: strPtr("Unpaid Salary"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Unpaid Salary", d.Subcategory)
	})

	t.Run("rejects foreign subcategory and unknown values", func(t *testing.T) {
		urgency := models.Urgency("asap")
		_, err := ApplyUpdate(stepOneDraft(), DraftUpdate{
			Subcategory: strPtr("Unpaid Salary"),
			Urgency:     &urgency,
			Region:      strPtr("Atlantis"),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "subcategory")
		assert.Contains(t, verr.Fields, "urgency")
		assert.Contains(t, verr.Fields, "region")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := ApplyUpdate(models.NewCaseDraft(), DraftUpdate{CategoryID: strPtr("tax")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "category_id")
	})
}
