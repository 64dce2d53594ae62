package models

import (
	"github.com/google/uuid"
)

// AttachedFile represents a file staged on a case draft
type AttachedFile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"storage_path,omitempty"`
}

// SizeMB is the size rendered the way the review step shows it
func (f AttachedFile) SizeMB() float64 {
	return float64(f.Size) / 1024 / 1024
}
