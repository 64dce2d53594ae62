package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"legalbridge-backend/models"
	"legalbridge-backend/repository"
	"legalbridge-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseService drives case-submission wizard sessions
type CaseService struct {
	sessions  repository.SessionStore[models.CaseSession]
	gates     repository.SessionStore[models.ConsentGate]
	storage   storage.Storage
	submitter CaseSubmitter
	now       func() time.Time
	logger    *zap.Logger
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// CaseWithSessionStore sets the wizard session store
func CaseWithSessionStore(store repository.SessionStore[models.CaseSession]) CaseServiceOption {
	return func(s *CaseService) {
		s.sessions = store
	}
}

// CaseWithGateStore sets the consent gate store
func CaseWithGateStore(store repository.SessionStore[models.ConsentGate]) CaseServiceOption {
	return func(s *CaseService) {
		s.gates = store
	}
}

// CaseWithStorage sets where staged file bytes live
func CaseWithStorage(st storage.Storage) CaseServiceOption {
	return func(s *CaseService) {
		s.storage = st
	}
}

// CaseWithSubmitter sets the external intake collaborator
func CaseWithSubmitter(submitter CaseSubmitter) CaseServiceOption {
	return func(s *CaseService) {
		s.submitter = submitter
	}
}

// CaseWithClock overrides the wall clock
func CaseWithClock(now func() time.Time) CaseServiceOption {
	return func(s *CaseService) {
		s.now = now
	}
}

// CaseWithLogger sets the logger
func CaseWithLogger(logger *zap.Logger) CaseServiceOption {
	return func(s *CaseService) {
		s.logger = logger
	}
}

// NewCaseService creates a new case service. Unset collaborators default to
// in-memory stores and the simulator.
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = repository.NewMemoryStore[models.CaseSession](30 * time.Minute)
	}
	if s.gates == nil {
		s.gates = repository.NewMemoryStore[models.ConsentGate](30 * time.Minute)
	}
	if s.storage == nil {
		s.storage = storage.NewMemoryStorage()
	}
	if s.submitter == nil {
		s.submitter = NewSimulator()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// FileView is a staged file as the wizard lists it
type FileView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	SizeMB   string `json:"size_mb"`
	MimeType string `json:"mime_type"`
}

// CaseView is a wizard session as the front end renders it
type CaseView struct {
	ID                uuid.UUID            `json:"id"`
	Step              models.Step          `json:"step"`
	TotalSteps        int                  `json:"total_steps"`
	Progress          int                  `json:"progress"`
	Draft             models.CaseDraft     `json:"draft"`
	Category          *models.CaseCategory `json:"category,omitempty"`
	Files             []FileView           `json:"files"`
	DescriptionLength int                  `json:"description_length"`
	Complexity        models.Complexity    `json:"complexity"`
	CanAdvance        bool                 `json:"can_advance"`
	Issues            map[string]string    `json:"issues,omitempty"`
	GateID            *uuid.UUID           `json:"gate_id,omitempty"`
	ReferenceCode     string               `json:"reference_code,omitempty"`
	Message           string               `json:"message,omitempty"`
}

// ViewCase derives the display fields of a session. Complexity is computed
// here on every call and never stored.
func ViewCase(cs *models.CaseSession) *CaseView {
	w := cs.Wizard
	draft := w.Draft
	draft.Files = nil

	files := make([]FileView, 0, len(w.Draft.Files))
	for i, f := range w.Draft.Files {
		files = append(files, FileView{
			Index:    i,
			Name:     f.Name,
			Size:     f.Size,
			SizeMB:   fmt.Sprintf("%.2f MB", f.SizeMB()),
			MimeType: f.MimeType,
		})
	}

	view := &CaseView{
		ID:                cs.ID,
		Step:              w.Step,
		TotalSteps:        int(models.StepConfirmation),
		Progress:          int(w.Step) * 100 / int(models.StepConfirmation),
		Draft:             draft,
		Files:             files,
		DescriptionLength: DescriptionLength(w.Draft.Description),
		Complexity:        EstimateComplexity(w.Draft.Urgency, w.Draft.Description),
		CanAdvance:        CanAdvance(w),
		GateID:            cs.GateID,
		ReferenceCode:     w.ReferenceCode,
	}
	if category, ok := models.FindCategory(w.Draft.CategoryID); ok {
		view.Category = &category
	}
	step := w.Step
	if step == models.StepReview {
		step, _ = DraftIssues(w.Draft)
	}
	if issues := StepIssues(step, w.Draft); issues != nil {
		view.Issues = issues.Fields
	}
	if w.Step == models.StepConfirmation && view.Category != nil {
		view.Message = "Your case has been submitted. You can now browse contributors who can help with your " +
			strings.ToLower(view.Category.Name) + " case."
	}
	return view
}

func (s *CaseService) load(ctx context.Context, id uuid.UUID) (*models.CaseSession, error) {
	cs, err := s.sessions.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load case session: %w", err)
	}
	return cs, nil
}

func (s *CaseService) save(ctx context.Context, cs *models.CaseSession) error {
	cs.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, cs.ID, cs); err != nil {
		return fmt.Errorf("failed to save case session: %w", err)
	}
	return nil
}

// Start opens a new wizard session. An unknown preselected category is ignored.
func (s *CaseService) Start(ctx context.Context, categoryID string) (*CaseView, error) {
	now := s.now()
	cs := &models.CaseSession{
		ID:        uuid.New(),
		Wizard:    models.NewWizard(),
		CreatedAt: now,
	}
	if _, ok := models.FindCategory(categoryID); ok {
		cs.Wizard.Draft.CategoryID = categoryID
	}

	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}
	return ViewCase(cs), nil
}

// Get returns the session view
func (s *CaseService) Get(ctx context.Context, id uuid.UUID) (*CaseView, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ViewCase(cs), nil
}

// Update applies field changes to the draft. An edit at the review step
// that breaks an earlier step's predicate moves the wizard back to that step
// and drops the open submission gate.
func (s *CaseService) Update(ctx context.Context, id uuid.UUID, upd DraftUpdate) (*CaseView, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs.Wizard.Step == models.StepConfirmation {
		return nil, ErrWizardComplete
	}

	draft, err := ApplyUpdate(cs.Wizard.Draft, upd)
	if err != nil {
		return nil, err
	}
	cs.Wizard.Draft = draft

	if cs.Wizard.Step == models.StepReview {
		if step, issues := DraftIssues(draft); issues != nil {
			cs.Wizard.Step = step
			if cs.GateID != nil {
				if err := s.gates.Delete(ctx, *cs.GateID); err != nil {
					return nil, fmt.Errorf("failed to discard consent gate: %w", err)
				}
				cs.GateID = nil
			}
		}
	}

	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}
	return ViewCase(cs), nil
}

// AdvanceResult is the session after "continue" plus the gate opened by
// "submit" at the review step.
type AdvanceResult struct {
	Case *CaseView `json:"case"`
	Gate *GateView `json:"gate,omitempty"`
}

// Next advances the wizard; at the review step it opens a fresh seeker gate
func (s *CaseService) Next(ctx context.Context, id uuid.UUID) (*AdvanceResult, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	w, err := Advance(cs.Wizard)
	if errors.Is(err, ErrConsentRequired) {
		gate, err := s.openSubmissionGate(ctx, cs)
		if err != nil {
			return nil, err
		}
		view := ViewGate(*gate)
		return &AdvanceResult{Case: ViewCase(cs), Gate: &view}, nil
	}
	if err != nil {
		return nil, err
	}

	cs.Wizard = w
	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}
	return &AdvanceResult{Case: ViewCase(cs)}, nil
}

func (s *CaseService) openSubmissionGate(ctx context.Context, cs *models.CaseSession) (*models.ConsentGate, error) {
	if cs.GateID != nil {
		if err := s.gates.Delete(ctx, *cs.GateID); err != nil {
			return nil, fmt.Errorf("failed to discard previous gate: %w", err)
		}
	}

	gate := NewGate(models.ConsentSeeker, models.PurposeCaseSubmission, cs.ID.String(), s.now())
	if err := s.gates.Save(ctx, gate.ID, &gate); err != nil {
		return nil, fmt.Errorf("failed to open consent gate: %w", err)
	}

	cs.GateID = &gate.ID
	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}
	return &gate, nil
}

// Back moves the wizard one step back
func (s *CaseService) Back(ctx context.Context, id uuid.UUID) (*CaseView, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	w, err := Retreat(cs.Wizard)
	if err != nil {
		return nil, err
	}
	cs.Wizard = w

	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}
	return ViewCase(cs), nil
}

// StageResult reports a staging batch
type StageResult struct {
	Case         *CaseView            `json:"case"`
	Rejected     []FileRejection      `json:"rejected"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// StageFiles checks a batch and keeps the acceptable files on the draft
func (s *CaseService) StageFiles(ctx context.Context, id uuid.UUID, batch []FileUpload) (*StageResult, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs.Wizard.Step == models.StepConfirmation {
		return nil, ErrWizardComplete
	}

	accepted, rejected := PartitionFiles(batch)
	staged := make([]models.AttachedFile, 0, len(accepted))
	for _, f := range accepted {
		file, err := s.put(ctx, cs.ID, f)
		if err != nil {
			s.deleteStaged(ctx, staged)
			return nil, err
		}
		staged = append(staged, *file)
	}
	cs.Wizard.Draft.Files = append(cs.Wizard.Draft.Files, staged...)

	if err := s.save(ctx, cs); err != nil {
		s.deleteStaged(ctx, staged)
		return nil, err
	}

	result := &StageResult{Case: ViewCase(cs), Rejected: rejected}
	if len(accepted) > 0 {
		result.Notification = &models.Notification{
			Success: true,
			Title:   fmt.Sprintf("%d file(s) uploaded successfully.", len(accepted)),
		}
	}
	return result, nil
}

func (s *CaseService) put(ctx context.Context, scope uuid.UUID, f FileUpload) (*models.AttachedFile, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", f.Name, err)
	}
	defer r.Close()

	fileID := uuid.New()
	path, err := s.storage.Put(ctx, scope, fileID, f.Name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to stage %q: %w", f.Name, err)
	}

	return &models.AttachedFile{
		ID:          fileID,
		Name:        f.Name,
		Size:        f.Size,
		MimeType:    f.MimeType,
		StoragePath: path,
	}, nil
}

// RemoveFile drops the staged file at index
func (s *CaseService) RemoveFile(ctx context.Context, id uuid.UUID, index int) (*StageResult, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs.Wizard.Step == models.StepConfirmation {
		return nil, ErrWizardComplete
	}

	files, removed, err := RemoveFileAt(cs.Wizard.Draft.Files, index)
	if err != nil {
		return nil, err
	}
	cs.Wizard.Draft.Files = files

	if err := s.storage.Delete(ctx, removed.StoragePath); err != nil {
		s.logger.Warn("failed to delete staged file", zap.String("path", removed.StoragePath), zap.Error(err))
	}
	if err := s.save(ctx, cs); err != nil {
		return nil, err
	}

	return &StageResult{
		Case:         ViewCase(cs),
		Rejected:     []FileRejection{},
		Notification: &models.Notification{Success: true, Title: "File removed successfully."},
	}, nil
}

// Discard drops the session with its staged files and open gate
func (s *CaseService) Discard(ctx context.Context, id uuid.UUID) error {
	cs, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	s.releaseFiles(ctx, cs)
	if cs.GateID != nil {
		if err := s.gates.Delete(ctx, *cs.GateID); err != nil {
			return fmt.Errorf("failed to discard consent gate: %w", err)
		}
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to discard case session: %w", err)
	}
	return nil
}

func (s *CaseService) releaseFiles(ctx context.Context, cs *models.CaseSession) {
	s.deleteStaged(ctx, cs.Wizard.Draft.Files)
}

func (s *CaseService) deleteStaged(ctx context.Context, files []models.AttachedFile) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
			s.logger.Warn("failed to delete staged file", zap.String("path", f.StoragePath), zap.Error(err))
		}
	}
}

// submit hands the reviewed case off and confirms the wizard. A failed
// handoff leaves the session at the review step.
func (s *CaseService) submit(ctx context.Context, gate models.ConsentGate, record models.ConsentRecord) (*models.Notification, *CaseView, error) {
	sessionID, err := uuid.Parse(gate.SubjectID)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	cs, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if cs.GateID == nil || *cs.GateID != gate.ID {
		return nil, nil, ErrGateNotFound
	}
	cs.GateID = nil

	ref := ReferenceCode(s.now())
	confirmed, err := Confirm(cs.Wizard, record, ref)
	if err != nil {
		return nil, nil, err
	}

	category, _ := models.FindCategory(cs.Wizard.Draft.CategoryID)
	draft := cs.Wizard.Draft
	draft.Files = nil
	sub := &CaseSubmission{
		ReferenceCode: ref,
		Category:      category,
		Draft:         draft,
		Complexity:    EstimateComplexity(cs.Wizard.Draft.Urgency, cs.Wizard.Draft.Description),
		Consent:       record,
		Files:         s.submissionFiles(cs.Wizard.Draft.Files),
	}

	if err := s.submitter.SubmitCase(ctx, sub); err != nil {
		s.logger.Error("case handoff failed", zap.String("session_id", cs.ID.String()), zap.Error(err))
		if saveErr := s.save(ctx, cs); saveErr != nil {
			return nil, nil, saveErr
		}
		return &models.Notification{
			Success:     false,
			Title:       "Case submission failed",
			Description: "Please try again or contact support if the problem persists.",
		}, ViewCase(cs), nil
	}

	s.releaseFiles(ctx, cs)
	cs.Wizard = confirmed
	if err := s.save(ctx, cs); err != nil {
		return nil, nil, err
	}

	s.logger.Info("case submitted", zap.String("session_id", cs.ID.String()), zap.String("reference_code", ref))
	return &models.Notification{
		Success:     true,
		Title:       "Case submitted successfully!",
		Description: "You can now browse contributors to find help.",
	}, ViewCase(cs), nil
}

func (s *CaseService) submissionFiles(files []models.AttachedFile) []SubmissionFile {
	out := make([]SubmissionFile, 0, len(files))
	for _, f := range files {
		path := f.StoragePath
		out = append(out, SubmissionFile{
			File: f,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				return s.storage.Open(ctx, path)
			},
		})
	}
	return out
}

// detachGate forgets the session's gate after a cancel
func (s *CaseService) detachGate(ctx context.Context, gate models.ConsentGate) error {
	sessionID, err := uuid.Parse(gate.SubjectID)
	if err != nil {
		return nil
	}
	cs, err := s.load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if cs.GateID != nil && *cs.GateID == gate.ID {
		cs.GateID = nil
		return s.save(ctx, cs)
	}
	return nil
}
