package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"legalbridge-backend/models"
)

// ErrSimulatedFailure is what a failing Simulator reports
var ErrSimulatedFailure = errors.New("simulated remote failure")

// SubmissionFile is a staged file handed off with a case
type SubmissionFile struct {
	File models.AttachedFile
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// CaseSubmission is everything the external intake endpoint receives
type CaseSubmission struct {
	ReferenceCode string               `json:"reference_code"`
	Category      models.CaseCategory  `json:"category"`
	Draft         models.CaseDraft     `json:"draft"`
	Complexity    models.Complexity    `json:"complexity"`
	Consent       models.ConsentRecord `json:"consent"`
	Files         []SubmissionFile     `json:"-"`
}

// CaseSubmitter hands a completed case to the external intake collaborator
type CaseSubmitter interface {
	SubmitCase(ctx context.Context, sub *CaseSubmission) error
}

// AccountGateway stands in for the authentication and onboarding backends
type AccountGateway interface {
	SignIn(ctx context.Context, req models.SignInRequest) error
	SignInWithGoogle(ctx context.Context) error
	SubmitApplication(ctx context.Context, app models.ContributorApplication) error
}

// Simulator answers every remote call after a fixed delay. It returns Err
// when set and succeeds otherwise.
type Simulator struct {
	CaseDelay        time.Duration
	SignInDelay      time.Duration
	GoogleDelay      time.Duration
	ApplicationDelay time.Duration
	Err              error
}

// NewSimulator returns a simulator with the front end's delays
func NewSimulator() *Simulator {
	return &Simulator{
		SignInDelay:      2 * time.Second,
		GoogleDelay:      1500 * time.Millisecond,
		ApplicationDelay: 3 * time.Second,
	}
}

func (s *Simulator) wait(ctx context.Context, d time.Duration) error {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return s.Err
}

// SubmitCase simulates the intake endpoint
func (s *Simulator) SubmitCase(ctx context.Context, sub *CaseSubmission) error {
	return s.wait(ctx, s.CaseDelay)
}

// SignIn simulates an email sign-in; any credentials pass
func (s *Simulator) SignIn(ctx context.Context, req models.SignInRequest) error {
	return s.wait(ctx, s.SignInDelay)
}

// SignInWithGoogle simulates the OAuth round trip
func (s *Simulator) SignInWithGoogle(ctx context.Context) error {
	return s.wait(ctx, s.GoogleDelay)
}

// SubmitApplication simulates the onboarding backend
func (s *Simulator) SubmitApplication(ctx context.Context, app models.ContributorApplication) error {
	return s.wait(ctx, s.ApplicationDelay)
}

// HTTPCaseSubmitter posts cases as multipart/form-data to an intake endpoint:
// a "case" JSON part followed by one "files" part per staged file.
type HTTPCaseSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPCaseSubmitter creates a submitter for endpoint
func NewHTTPCaseSubmitter(endpoint string, client *http.Client) *HTTPCaseSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPCaseSubmitter{endpoint: endpoint, client: client}
}

// SubmitCase streams the case and its files to the endpoint. Staged files
// are read one at a time while the request is in flight.
func (s *HTTPCaseSubmitter) SubmitCase(ctx context.Context, sub *CaseSubmission) error {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	writeErr := make(chan error, 1)
	go func() {
		err := writeCaseBody(ctx, w, sub)
		pw.CloseWithError(err)
		writeErr <- err
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, pr)
	if err != nil {
		pr.CloseWithError(err)
		<-writeErr
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	pr.Close()
	werr := <-writeErr

	if werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
		return werr
	}
	if err != nil {
		return fmt.Errorf("intake endpoint unreachable: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("intake endpoint returned %d", resp.StatusCode)
	}
	if werr != nil {
		return fmt.Errorf("intake endpoint stopped reading the upload: %w", werr)
	}
	return nil
}

func writeCaseBody(ctx context.Context, w *multipart.Writer, sub *CaseSubmission) error {
	caseHeader := make(textproto.MIMEHeader)
	caseHeader.Set("Content-Disposition", `form-data; name="case"`)
	caseHeader.Set("Content-Type", "application/json")
	part, err := w.CreatePart(caseHeader)
	if err != nil {
		return fmt.Errorf("failed to create case part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(sub); err != nil {
		return fmt.Errorf("failed to encode case: %w", err)
	}

	for _, f := range sub.Files {
		if err := writeFilePart(ctx, w, f); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return nil
}

func writeFilePart(ctx context.Context, w *multipart.Writer, f SubmissionFile) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.File.Name))
	header.Set("Content-Type", f.File.MimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}

	r, err := f.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open staged file %q: %w", f.File.Name, err)
	}
	defer r.Close()

	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to copy staged file %q: %w", f.File.Name, err)
	}
	return nil
}
