package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"legalbridge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_HonoursCancellation(t *testing.T) {
	sim := &Simulator{SignInDelay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.SignIn(ctx, models.SignInRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_ReturnsConfiguredError(t *testing.T) {
	assert.NoError(t, (&Simulator{}).SubmitCase(context.Background(), &CaseSubmission{}))
	assert.ErrorIs(t, (&Simulator{Err: ErrSimulatedFailure}).SubmitCase(context.Background(), &CaseSubmission{}), ErrSimulatedFailure)
}

func TestHTTPCaseSubmitter(t *testing.T) {
	var (
		gotCase  CaseSubmission
		gotFiles = map[string]string{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.NoError(t, json.Unmarshal([]byte(r.FormValue("case")), &gotCase))
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				continue
			}
			b, _ := io.ReadAll(f)
			f.Close()
			gotFiles[fh.Filename] = string(b)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sub := &CaseSubmission{
		ReferenceCode: "LB-TEST",
		Complexity:    models.ComplexityLow,
		Files: []SubmissionFile{{
			File: models.AttachedFile{Name: "notice.pdf", MimeType: "application/pdf"},
			Open: func(context.Context) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
			},
		}},
	}

	err := NewHTTPCaseSubmitter(srv.URL, srv.Client()).SubmitCase(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "LB-TEST", gotCase.ReferenceCode)
	assert.Equal(t, map[string]string{"notice.pdf": "%PDF-1.4"}, gotFiles)
}

func TestHTTPCaseSubmitter_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewHTTPCaseSubmitter(srv.URL, nil).SubmitCase(context.Background(), &CaseSubmission{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPCaseSubmitter_StreamsFilesOneAtATime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	open := 0
	staged := func(name string) SubmissionFile {
		return SubmissionFile{
			File: models.AttachedFile{Name: name, MimeType: "application/pdf"},
			Open: func(context.Context) (io.ReadCloser, error) {
				open++
				assert.Equal(t, 1, open, "previous file still open when %s was opened", name)
				return &closeTracker{Reader: strings.NewReader(strings.Repeat("x", 64<<10)), open: &open}, nil
			},
		}
	}

	sub := &CaseSubmission{Files: []SubmissionFile{staged("a.pdf"), staged("b.pdf"), staged("c.pdf")}}
	require.NoError(t, NewHTTPCaseSubmitter(srv.URL, srv.Client()).SubmitCase(context.Background(), sub))
	assert.Equal(t, 0, open)
}

func TestHTTPCaseSubmitter_StagedFileUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sub := &CaseSubmission{Files: []SubmissionFile{{
		File: models.AttachedFile{Name: "lease.pdf", MimeType: "application/pdf"},
		Open: func(context.Context) (io.ReadCloser, error) {
			return nil, errors.New("spool missing")
		},
	}}}

	err := NewHTTPCaseSubmitter(srv.URL, srv.Client()).SubmitCase(context.Background(), sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lease.pdf")
}

type closeTracker struct {
	io.Reader
	open *int
}

func (c *closeTracker) Close() error {
	*c.open--
	return nil
}
