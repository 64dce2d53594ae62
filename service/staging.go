package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"legalbridge-backend/models"
)

// MaxFileSize is the largest file the staging area accepts
const MaxFileSize int64 = 10 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

// RejectReason names why a candidate file was refused
type RejectReason string

const (
	RejectTooLarge        RejectReason = "too_large"
	RejectUnsupportedType RejectReason = "unsupported_type"
)

// FileUpload is a candidate file offered to the staging area. Only the
// declared size and MIME type are checked; content is never inspected.
type FileUpload struct {
	Name     string
	Size     int64
	MimeType string
	Open     func() (io.ReadCloser, error)
}

// FileRejection says which candidate was refused and why
type FileRejection struct {
	Name    string       `json:"name"`
	Reason  RejectReason `json:"reason"`
	Message string       `json:"message"`
}

// CheckFile returns nil when f may be staged
func CheckFile(f FileUpload) *FileRejection {
	if f.Size > MaxFileSize {
		return &FileRejection{
			Name:    f.Name,
			Reason:  RejectTooLarge,
			Message: fmt.Sprintf("File %q is too large. Maximum size is 10MB.", f.Name),
		}
	}
	if !allowedMimeTypes[normalizeMimeType(f.MimeType)] {
		return &FileRejection{
			Name:    f.Name,
			Reason:  RejectUnsupportedType,
			Message: fmt.Sprintf("File %q is not a supported format. Only PDF and images are allowed.", f.Name),
		}
	}
	return nil
}

// PartitionFiles splits a batch into the files to stage and the rejections.
// A rejected file never blocks the rest of its batch.
func PartitionFiles(batch []FileUpload) ([]FileUpload, []FileRejection) {
	accepted := make([]FileUpload, 0, len(batch))
	rejected := make([]FileRejection, 0)
	for _, f := range batch {
		if r := CheckFile(f); r != nil {
			rejected = append(rejected, *r)
			continue
		}
		f.MimeType = normalizeMimeType(f.MimeType)
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

// RemoveFileAt returns files without the entry at index, plus that entry
func RemoveFileAt(files []models.AttachedFile, index int) ([]models.AttachedFile, models.AttachedFile, error) {
	if index < 0 || index >= len(files) {
		return files, models.AttachedFile{}, ErrFileIndexOutOfRange
	}
	removed := files[index]
	out := make([]models.AttachedFile, 0, len(files)-1)
	out = append(out, files[:index]...)
	out = append(out, files[index+1:]...)
	return out, removed, nil
}

// DetectMimeType prefers the declared type and falls back to the extension
// when the client sent none or the generic octet-stream.
func DetectMimeType(declared, filename string) string {
	if declared = normalizeMimeType(declared); declared != "" && declared != "application/octet-stream" {
		return declared
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func normalizeMimeType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
