package service

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"

	"legalbridge-backend/models"

	"go.uber.org/zap"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// AccountService validates the sign-in and contributor application forms and
// hands them to the account gateway.
type AccountService struct {
	gateway AccountGateway
	logger  *zap.Logger
}

// AccountServiceOption is a functional option for AccountService
type AccountServiceOption func(*AccountService)

// AccountWithGateway sets the remote account collaborator
func AccountWithGateway(gateway AccountGateway) AccountServiceOption {
	return func(s *AccountService) {
		s.gateway = gateway
	}
}

// AccountWithLogger sets the logger
func AccountWithLogger(logger *zap.Logger) AccountServiceOption {
	return func(s *AccountService) {
		s.logger = logger
	}
}

// NewAccountService creates a new account service
func NewAccountService(opts ...AccountServiceOption) *AccountService {
	s := &AccountService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.gateway == nil {
		s.gateway = NewSimulator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// ValidateSignIn returns the sign-in form's field messages
func ValidateSignIn(req models.SignInRequest) error {
	verr := NewValidationError()
	switch {
	case req.Email == "":
		verr.Set("email", "Email is required")
	case !emailPattern.MatchString(req.Email):
		verr.Set("email", "Please enter a valid email address")
	}
	switch {
	case req.Password == "":
		verr.Set("password", "Password is required")
	case len(req.Password) < minPasswordLength:
		verr.Set("password", "Password must be at least 6 characters")
	}
	return verr.OrNil()
}

// ValidateApplication returns the contributor application's field messages
func ValidateApplication(app models.ContributorApplication) error {
	verr := NewValidationError()
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	if blank(app.FirstName) {
		verr.Set("first_name", "First name is required")
	}
	if blank(app.LastName) {
		verr.Set("last_name", "Last name is required")
	}
	switch {
	case app.Email == "":
		verr.Set("email", "Email is required")
	case !emailPattern.MatchString(app.Email):
		verr.Set("email", "Please enter a valid email")
	}
	if app.Phone == "" {
		verr.Set("phone", "Phone number is required")
	}
	if blank(app.City) {
		verr.Set("city", "City is required")
	}
	if blank(app.State) {
		verr.Set("state", "State is required")
	}
	if !slices.Contains(models.ApplicantTypes, app.ContributorType) {
		verr.Set("contributor_type", "Please select your role")
	}
	if !slices.Contains(models.Specializations, app.Specialization) {
		verr.Set("specialization", "Please select your specialization")
	}
	if !slices.Contains(models.ExperienceLevels, app.Experience) {
		verr.Set("experience", "Experience level is required")
	}
	if blank(app.Education) {
		verr.Set("education", "Education details are required")
	}
	if app.ContributorType == "lawyer" && blank(app.BarLicense) {
		verr.Set("bar_license", "Bar license number is required for lawyers")
	}
	for _, lang := range app.Languages {
		if !slices.Contains(models.Languages, lang) {
			verr.Set("languages", "Unsupported language: "+lang)
			break
		}
	}
	if blank(app.Bio) {
		verr.Set("bio", "Please provide a brief bio")
	}
	if !slices.Contains(models.ApplicantAvailability, app.Availability) {
		verr.Set("availability", "Please select your availability")
	}
	if !app.TermsAccepted {
		verr.Set("terms_accepted", "You must accept the terms and conditions")
	}
	return verr.OrNil()
}

// SignIn validates the form and performs the simulated sign-in. Remote
// failures come back as a failed notification, not an error.
func (s *AccountService) SignIn(ctx context.Context, req models.SignInRequest) (*models.Notification, error) {
	if err := ValidateSignIn(req); err != nil {
		return nil, err
	}

	if err := s.gateway.SignIn(ctx, req); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Warn("sign in failed", zap.Error(err))
		return &models.Notification{
			Success:     false,
			Title:       "Sign in failed",
			Description: "Please check your credentials and try again.",
		}, nil
	}

	return &models.Notification{
		Success:     true,
		Title:       "Sign in successful!",
		Description: "Welcome back to LegalBridge.",
	}, nil
}

// SignInWithGoogle performs the simulated Google sign-in
func (s *AccountService) SignInWithGoogle(ctx context.Context) (*models.Notification, error) {
	if err := s.gateway.SignInWithGoogle(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Warn("google sign in failed", zap.Error(err))
		return &models.Notification{
			Success:     false,
			Title:       "Google sign in failed",
			Description: "Please try again or use email sign in.",
		}, nil
	}

	return &models.Notification{
		Success:     true,
		Title:       "Google sign in successful!",
		Description: "Welcome to LegalBridge.",
	}, nil
}

// SubmitApplication validates and submits a contributor application
func (s *AccountService) SubmitApplication(ctx context.Context, app models.ContributorApplication) (*models.Notification, error) {
	if err := ValidateApplication(app); err != nil {
		return nil, err
	}

	if err := s.gateway.SubmitApplication(ctx, app); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Warn("contributor application failed", zap.Error(err))
		return &models.Notification{
			Success:     false,
			Title:       "Submission failed",
			Description: "Please try again or contact support if the problem persists.",
		}, nil
	}

	s.logger.Info("contributor application submitted", zap.String("contributor_type", app.ContributorType))
	return &models.Notification{
		Success:     true,
		Title:       "Application submitted successfully!",
		Description: "We'll review your application and get back to you within 2-3 business days.",
	}, nil
}
