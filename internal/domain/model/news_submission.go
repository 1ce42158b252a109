package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrImageRequired       = errors.New("please select an image")
	ErrImageType           = errors.New("image must be an image file")
)

// NewsSubmission is a validated-on-demand upload form.
type NewsSubmission struct {
	Title       string
	Description string
	FileName    string
	FileType    string
	Content     []byte
	// Email labels the submission with the signed-in identity. It is not a credential.
	Email string
}

// Validate mirrors the form's required attributes and image-only file picker.
func (s NewsSubmission) Validate() error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return ErrTitleRequired
	case strings.TrimSpace(s.Description) == "":
		return ErrDescriptionRequired
	case len(s.Content) == 0:
		return ErrImageRequired
	case !strings.HasPrefix(s.FileType, "image/"):
		return ErrImageType
	}
	return nil
}

// CreateNewsRequest is the JSON body posted to the news endpoint.
// Image holds standard base64 without any data-URL prefix.
type CreateNewsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	Email       string `json:"email"`
}

// CreateRequest encodes the submission for the wire.
func (s NewsSubmission) CreateRequest() CreateNewsRequest {
	return CreateNewsRequest{
		Title:       s.Title,
		Description: s.Description,
		Image:       base64.StdEncoding.EncodeToString(s.Content),
		FileName:    s.FileName,
		FileType:    s.FileType,
		Email:       s.Email,
	}
}
