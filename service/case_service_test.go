package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"legalbridge-backend/models"
	"legalbridge-backend/repository"
	"legalbridge-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

type testServices struct {
	cases   *CaseService
	consent *ConsentService
	storage *storage.MemoryStorage
}

func newTestServices(submitter CaseSubmitter) *testServices {
	clock := func() time.Time { return fixedNow }
	gates := repository.NewMemoryStore[models.ConsentGate](time.Hour)
	st := storage.NewMemoryStorage()

	cases := NewCaseService(
		CaseWithSessionStore(repository.NewMemoryStore[models.CaseSession](time.Hour)),
		CaseWithGateStore(gates),
		CaseWithStorage(st),
		CaseWithSubmitter(submitter),
		CaseWithClock(clock),
	)
	consent := NewConsentService(
		ConsentWithGateStore(gates),
		ConsentWithCaseService(cases),
		ConsentWithDirectory(NewDirectoryService(repository.NewStaticContributorRepository(models.SeedContributors))),
		ConsentWithClock(clock),
	)
	return &testServices{cases: cases, consent: consent, storage: st}
}

// reviewedCase walks a new session to the review step
func reviewedCase(t *testing.T, s *testServices) *CaseView {
	t.Helper()
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "rent")
	require.NoError(t, err)

	_, err = s.cases.Update(ctx, view.ID, DraftUpdate{
		Subcategory: strPtr("Eviction Notice"),
		City:        strPtr("Pune"),
		Region:      strPtr("Maharashtra"),
	})
	require.NoError(t, err)
	_, err = s.cases.Next(ctx, view.ID)
	require.NoError(t, err)

	_, err = s.cases.Update(ctx, view.ID, DraftUpdate{
		Description:    strPtr(strings.Repeat("My landlord served an eviction notice. ", 3)),
		Timeline:       strPtr("Notice received last week"),
		DesiredOutcome: strPtr("Stay until the lease ends"),
	})
	require.NoError(t, err)
	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, models.StepReview, res.Case.Step)
	return res.Case
}

func affirmAll(t *testing.T, s *testServices, gateID uuid.UUID) {
	t.Helper()
	for i := 0; i < models.ConsentPointCount; i++ {
		_, err := s.consent.Set(context.Background(), gateID, i, true)
		require.NoError(t, err)
	}
}

func TestCaseService_Start(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "rent")
	require.NoError(t, err)
	assert.Equal(t, models.StepCategory, view.Step)
	assert.Equal(t, "rent", view.Draft.CategoryID)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Rent & Housing Disputes", view.Category.Name)
	assert.Equal(t, 25, view.Progress)
	assert.False(t, view.CanAdvance)

	view, err = s.cases.Start(ctx, "no-such-category")
	require.NoError(t, err)
	assert.Empty(t, view.Draft.CategoryID)
	assert.Equal(t, models.UrgencyNormal, view.Draft.Urgency)
}

func TestCaseService_NextBlockedReportsIssues(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "rent")
	require.NoError(t, err)
	assert.Contains(t, view.Issues, "subcategory")

	_, err = s.cases.Next(ctx, view.ID)
	assert.ErrorIs(t, err, ErrStepBlocked)

	got, err := s.cases.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepCategory, got.Step)
}

func TestCaseService_SubmitFlow(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()
	view := reviewedCase(t, s)

	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Gate)
	assert.Equal(t, models.ConsentSeeker, res.Gate.Role)
	assert.False(t, res.Gate.CanAccept)
	assert.Equal(t, &res.Gate.ID, res.Case.GateID)

	_, err = s.consent.Accept(ctx, res.Gate.ID)
	assert.ErrorIs(t, err, ErrConsentIncomplete)

	affirmAll(t, s, res.Gate.ID)
	accepted, err := s.consent.Accept(ctx, res.Gate.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Notification.Success)
	assert.Equal(t, "Case submitted successfully!", accepted.Notification.Title)
	require.NotNil(t, accepted.Case)
	assert.Equal(t, models.StepConfirmation, accepted.Case.Step)
	assert.Equal(t, ReferenceCode(fixedNow), accepted.Case.ReferenceCode)
	assert.Contains(t, accepted.Case.Message, "rent & housing disputes")
	assert.Nil(t, accepted.Case.GateID)

	// Gates are single-use
	_, err = s.consent.Get(ctx, res.Gate.ID)
	assert.ErrorIs(t, err, ErrGateNotFound)

	_, err = s.cases.Update(ctx, view.ID, DraftUpdate{City: strPtr("Mumbai")})
	assert.ErrorIs(t, err, ErrWizardComplete)
	_, err = s.cases.Back(ctx, view.ID)
	assert.ErrorIs(t, err, ErrWizardComplete)
}

func TestCaseService_FailedHandoffStaysAtReview(t *testing.T) {
	s := newTestServices(&Simulator{Err: ErrSimulatedFailure})
	ctx := context.Background()
	view := reviewedCase(t, s)

	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	affirmAll(t, s, res.Gate.ID)

	accepted, err := s.consent.Accept(ctx, res.Gate.ID)
	require.NoError(t, err)
	assert.False(t, accepted.Notification.Success)
	assert.Equal(t, models.StepReview, accepted.Case.Step)
	assert.Empty(t, accepted.Case.ReferenceCode)
	assert.Nil(t, accepted.Case.GateID)
}

func TestCaseService_ReopeningGateReplacesPrevious(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()
	view := reviewedCase(t, s)

	first, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	affirmAll(t, s, first.Gate.ID)

	second, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Gate.ID, second.Gate.ID)
	assert.Equal(t, [models.ConsentPointCount]bool{}, second.Gate.Checked)

	_, err = s.consent.Get(ctx, first.Gate.ID)
	assert.ErrorIs(t, err, ErrGateNotFound)
}

func TestCaseService_CancelGate(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()
	view := reviewedCase(t, s)

	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	_, err = s.consent.Set(ctx, res.Gate.ID, 0, true)
	require.NoError(t, err)

	require.NoError(t, s.consent.Cancel(ctx, res.Gate.ID))

	got, err := s.cases.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, got.Step)
	assert.Nil(t, got.GateID)

	_, err = s.consent.Get(ctx, res.Gate.ID)
	assert.ErrorIs(t, err, ErrGateNotFound)
}

func TestCaseService_StageAndRemoveFiles(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "")
	require.NoError(t, err)

	res, err := s.cases.StageFiles(ctx, view.ID, []FileUpload{
		upload("notice.pdf", 9*mb, "application/pdf"),
		upload("scan.pdf", 11*mb, "application/pdf"),
		upload("notes.txt", 2*mb, "text/plain"),
	})
	require.NoError(t, err)
	require.Len(t, res.Case.Files, 1)
	assert.Equal(t, "notice.pdf", res.Case.Files[0].Name)
	assert.Equal(t, "9.00 MB", res.Case.Files[0].SizeMB)
	assert.Len(t, res.Rejected, 2)
	require.NotNil(t, res.Notification)
	assert.Equal(t, "1 file(s) uploaded successfully.", res.Notification.Title)
	assert.Equal(t, 1, s.storage.Len())

	_, err = s.cases.RemoveFile(ctx, view.ID, 5)
	assert.ErrorIs(t, err, ErrFileIndexOutOfRange)

	removed, err := s.cases.RemoveFile(ctx, view.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, removed.Case.Files)
	assert.Equal(t, "File removed successfully.", removed.Notification.Title)
	assert.Equal(t, 0, s.storage.Len())
}

func TestCaseService_StageOnlyRejectedFiles(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "")
	require.NoError(t, err)

	res, err := s.cases.StageFiles(ctx, view.ID, []FileUpload{upload("notes.txt", mb, "text/plain")})
	require.NoError(t, err)
	assert.Nil(t, res.Notification)
	assert.Len(t, res.Rejected, 1)
	assert.Empty(t, res.Case.Files)
}

func TestCaseService_SubmissionReleasesStagedFiles(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()
	view := reviewedCase(t, s)

	_, err := s.cases.StageFiles(ctx, view.ID, []FileUpload{upload("notice.pdf", mb, "application/pdf")})
	require.NoError(t, err)
	require.Equal(t, 1, s.storage.Len())

	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	affirmAll(t, s, res.Gate.ID)
	_, err = s.consent.Accept(ctx, res.Gate.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, s.storage.Len())
}

func TestCaseService_Discard(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()
	view := reviewedCase(t, s)

	_, err := s.cases.StageFiles(ctx, view.ID, []FileUpload{upload("photo.png", mb, "image/png")})
	require.NoError(t, err)
	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)

	require.NoError(t, s.cases.Discard(ctx, view.ID))

	_, err = s.cases.Get(ctx, view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.consent.Get(ctx, res.Gate.ID)
	assert.ErrorIs(t, err, ErrGateNotFound)
	assert.Equal(t, 0, s.storage.Len())

	assert.ErrorIs(t, s.cases.Discard(ctx, view.ID), ErrSessionNotFound)
}

func TestConsentService_Connect(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	_, err := s.consent.Connect(ctx, "3")
	assert.ErrorIs(t, err, ErrContributorUnavailable)

	_, err = s.consent.Connect(ctx, "404")
	assert.ErrorIs(t, err, ErrContributorNotFound)

	gate, err := s.consent.Connect(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.PurposeContributorConnection, gate.Purpose)

	affirmAll(t, s, gate.ID)
	res, err := s.consent.Accept(ctx, gate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Connection request sent to Priya Sharma!", res.Notification.Title)
	assert.Nil(t, res.Case)
}

func TestConsentService_Open(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	gate, err := s.consent.Open(ctx, OpenRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.ConsentContributor, gate.Role)
	assert.Equal(t, models.PurposeContributorOnboarding, gate.Purpose)

	affirmAll(t, s, gate.ID)
	res, err := s.consent.Accept(ctx, gate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ethics terms accepted", res.Notification.Title)

	_, err = s.consent.Open(ctx, OpenRequest{Role: "judge", Purpose: models.PurposeCaseSubmission})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
	assert.Contains(t, verr.Fields, "purpose")
}

type recordingSubmitter struct {
	received []*CaseSubmission
}

func (r *recordingSubmitter) SubmitCase(ctx context.Context, sub *CaseSubmission) error {
	r.received = append(r.received, sub)
	return nil
}

func TestCaseService_EditAtReviewReturnsToBrokenStep(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestServices(rec)
	ctx := context.Background()
	view := reviewedCase(t, s)

	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	affirmAll(t, s, res.Gate.ID)

	edited, err := s.cases.Update(ctx, view.ID, DraftUpdate{
		CategoryID:  strPtr(""),
		Region:      strPtr(""),
		Description: strPtr("short"),
		Timeline:    strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StepCategory, edited.Step)
	assert.False(t, edited.CanAdvance)
	assert.Contains(t, edited.Issues, "category_id")
	assert.Contains(t, edited.Issues, "region")
	assert.Nil(t, edited.GateID)

	_, err = s.consent.Accept(ctx, res.Gate.ID)
	assert.ErrorIs(t, err, ErrGateNotFound)
	assert.Empty(t, rec.received)
}

func TestCaseService_ShortenedDescriptionAtReview(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestServices(rec)
	ctx := context.Background()
	view := reviewedCase(t, s)

	edited, err := s.cases.Update(ctx, view.ID, DraftUpdate{Description: strPtr(strings.Repeat("x", 49))})
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, edited.Step)
	assert.Contains(t, edited.Issues, "description")

	_, err = s.cases.Next(ctx, view.ID)
	assert.ErrorIs(t, err, ErrStepBlocked)

	// A valid edit at review stays at review and still submits
	_, err = s.cases.Update(ctx, view.ID, DraftUpdate{Description: strPtr(strings.Repeat("x", 50))})
	require.NoError(t, err)
	res, err := s.cases.Next(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, models.StepReview, res.Case.Step)

	edited, err = s.cases.Update(ctx, view.ID, DraftUpdate{City: strPtr("Mumbai")})
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, edited.Step)
	require.NotNil(t, res.Gate)
	assert.Equal(t, &res.Gate.ID, edited.GateID)

	affirmAll(t, s, res.Gate.ID)
	accepted, err := s.consent.Accept(ctx, res.Gate.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Notification.Success)

	require.Len(t, rec.received, 1)
	sub := rec.received[0]
	assert.Nil(t, StepIssues(models.StepCategory, sub.Draft))
	assert.Nil(t, StepIssues(models.StepDetails, sub.Draft))
	assert.Equal(t, "Mumbai", sub.Draft.City)
	assert.Equal(t, "rent", sub.Category.ID)
}

func TestCaseService_StageFailureDeletesBatch(t *testing.T) {
	s := newTestServices(&Simulator{})
	ctx := context.Background()

	view, err := s.cases.Start(ctx, "")
	require.NoError(t, err)

	broken := upload("photo.jpg", mb, "image/jpeg")
	broken.Open = func() (io.ReadCloser, error) { return nil, errors.New("stream closed") }

	_, err = s.cases.StageFiles(ctx, view.ID, []FileUpload{
		upload("notice.pdf", mb, "application/pdf"),
		upload("lease.pdf", mb, "application/pdf"),
		broken,
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.storage.Len())

	got, err := s.cases.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Files)
}

func TestConsentService_OnboardingRequiresContributorTerms(t *testing.T) {
	s := newTestServices(&Simulator{})

	_, err := s.consent.Open(context.Background(), OpenRequest{
		Role:    models.ConsentSeeker,
		Purpose: models.PurposeContributorOnboarding,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
	assert.NotContains(t, verr.Fields, "purpose")
}
