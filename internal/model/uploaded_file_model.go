package model

import "time"

// UploadedFile is the file a user picked for evaluation.
type UploadedFile struct {
	Name       string
	Size       int64
	Type       string
	Data       []byte
	SelectedAt time.Time
}
