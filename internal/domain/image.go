package domain

import "io"

// ImageUpload is an image picked by the user that has not been stored yet.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

func (u ImageUpload) IsEmpty() bool {
	return u.Reader == nil || u.Size <= 0
}
