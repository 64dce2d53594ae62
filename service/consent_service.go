package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"legalbridge-backend/models"
	"legalbridge-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsentService manages consent gates and dispatches their completions
type ConsentService struct {
	gates     repository.SessionStore[models.ConsentGate]
	cases     *CaseService
	directory *DirectoryService
	now       func() time.Time
	logger    *zap.Logger
}

// ConsentServiceOption is a functional option for ConsentService
type ConsentServiceOption func(*ConsentService)

// ConsentWithGateStore sets the gate store. It must be the store the case
// service opens submission gates in.
func ConsentWithGateStore(store repository.SessionStore[models.ConsentGate]) ConsentServiceOption {
	return func(s *ConsentService) {
		s.gates = store
	}
}

// ConsentWithCaseService sets the case service completing submission gates
func ConsentWithCaseService(cases *CaseService) ConsentServiceOption {
	return func(s *ConsentService) {
		s.cases = cases
	}
}

// ConsentWithDirectory sets the directory used for connection requests
func ConsentWithDirectory(directory *DirectoryService) ConsentServiceOption {
	return func(s *ConsentService) {
		s.directory = directory
	}
}

// ConsentWithClock overrides the wall clock
func ConsentWithClock(now func() time.Time) ConsentServiceOption {
	return func(s *ConsentService) {
		s.now = now
	}
}

// ConsentWithLogger sets the logger
func ConsentWithLogger(logger *zap.Logger) ConsentServiceOption {
	return func(s *ConsentService) {
		s.logger = logger
	}
}

// NewConsentService creates a new consent service
func NewConsentService(opts ...ConsentServiceOption) *ConsentService {
	s := &ConsentService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.cases == nil {
		s.cases = NewCaseService(CaseWithGateStore(s.gates))
	}
	if s.gates == nil {
		s.gates = s.cases.gates
	}
	if s.directory == nil {
		s.directory = NewDirectoryService(repository.NewStaticContributorRepository(models.SeedContributors))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// OpenRequest opens a standalone gate
type OpenRequest struct {
	Role    models.ConsentRole `json:"role"`
	Purpose models.GatePurpose `json:"purpose"`
}

// Open opens a contributor-onboarding gate. Submission gates are opened by
// the wizard and connection gates by Connect.
func (s *ConsentService) Open(ctx context.Context, req OpenRequest) (*GateView, error) {
	if req.Role == "" {
		req.Role = models.ConsentContributor
	}
	if req.Purpose == "" {
		req.Purpose = models.PurposeContributorOnboarding
	}

	verr := NewValidationError()
	if !req.Role.Valid() {
		verr.Set("role", "Role must be seeker or contributor")
	} else if req.Purpose == models.PurposeContributorOnboarding && req.Role != models.ConsentContributor {
		verr.Set("role", "Onboarding gates use contributor terms")
	}
	if req.Purpose != models.PurposeContributorOnboarding {
		verr.Set("purpose", "Only contributor_onboarding gates can be opened directly")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return s.open(ctx, NewGate(req.Role, req.Purpose, "", s.now()))
}

// Connect opens a seeker gate for a connection request to contributorID
func (s *ConsentService) Connect(ctx context.Context, contributorID string) (*GateView, error) {
	contributor, err := s.directory.Get(ctx, contributorID)
	if err != nil {
		return nil, err
	}
	if !contributor.CanConnect() {
		return nil, ErrContributorUnavailable
	}

	return s.open(ctx, NewGate(models.ConsentSeeker, models.PurposeContributorConnection, contributor.ID, s.now()))
}

func (s *ConsentService) open(ctx context.Context, gate models.ConsentGate) (*GateView, error) {
	if err := s.gates.Save(ctx, gate.ID, &gate); err != nil {
		return nil, fmt.Errorf("failed to open consent gate: %w", err)
	}
	view := ViewGate(gate)
	return &view, nil
}

func (s *ConsentService) load(ctx context.Context, id uuid.UUID) (*models.ConsentGate, error) {
	gate, err := s.gates.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load consent gate: %w", err)
	}
	return gate, nil
}

// Get returns the gate view
func (s *ConsentService) Get(ctx context.Context, id uuid.UUID) (*GateView, error) {
	gate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ViewGate(*gate)
	return &view, nil
}

// Set checks or unchecks the affirmation at index
func (s *ConsentService) Set(ctx context.Context, id uuid.UUID, index int, checked bool) (*GateView, error) {
	gate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := SetAffirmation(*gate, index, checked)
	if err != nil {
		return nil, err
	}
	if err := s.gates.Save(ctx, id, &updated); err != nil {
		return nil, fmt.Errorf("failed to save consent gate: %w", err)
	}

	view := ViewGate(updated)
	return &view, nil
}

// AcceptResult is the outcome of an accepted gate. Case is set for
// submission gates.
type AcceptResult struct {
	Notification *models.Notification `json:"notification"`
	Case         *CaseView            `json:"case,omitempty"`
}

// Accept runs the gate's completion and closes it. An incomplete gate stays
// open and reports ErrConsentIncomplete.
func (s *ConsentService) Accept(ctx context.Context, id uuid.UUID) (*AcceptResult, error) {
	gate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &AcceptResult{}
	err = AcceptGate(*gate, s.now(), func(record models.ConsentRecord) error {
		switch gate.Purpose {
		case models.PurposeCaseSubmission:
			notification, view, err := s.cases.submit(ctx, *gate, record)
			if err != nil {
				return err
			}
			result.Notification = notification
			result.Case = view
		case models.PurposeContributorConnection:
			contributor, err := s.directory.Get(ctx, gate.SubjectID)
			if err != nil {
				return err
			}
			result.Notification = &models.Notification{
				Success:     true,
				Title:       fmt.Sprintf("Connection request sent to %s!", contributor.Name),
				Description: "They will be notified and can accept your request.",
			}
		case models.PurposeContributorOnboarding:
			result.Notification = &models.Notification{
				Success:     true,
				Title:       "Ethics terms accepted",
				Description: "You can now complete your contributor application.",
			}
		default:
			return fmt.Errorf("unknown gate purpose %q", gate.Purpose)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.gates.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to close consent gate: %w", err)
	}

	s.logger.Info("consent accepted",
		zap.String("gate_id", id.String()),
		zap.String("role", string(gate.Role)),
		zap.String("purpose", string(gate.Purpose)),
	)
	return result, nil
}

// Cancel closes the gate without running its completion. Checkbox state is
// discarded with it.
func (s *ConsentService) Cancel(ctx context.Context, id uuid.UUID) error {
	gate, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	var closeErr error
	CancelGate(*gate, func() {
		if gate.Purpose == models.PurposeCaseSubmission {
			closeErr = s.cases.detachGate(ctx, *gate)
		}
	})
	if closeErr != nil {
		return closeErr
	}

	if err := s.gates.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to close consent gate: %w", err)
	}
	return nil
}
