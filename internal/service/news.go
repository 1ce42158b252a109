package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/newsboard/newsboard/internal/domain/model"
	apperrors "github.com/newsboard/newsboard/internal/errors"
	"github.com/newsboard/newsboard/internal/ports"
)

// Messages shown for upload and list outcomes.
const (
	UploadSucceededMessage = "Upload successful!"
	UploadFailedMessage    = "Upload failed"
	SomethingWentWrong     = "Something went wrong"
	FetchFailedMessage     = "Failed to fetch news"
	NoNewsMessage          = "No news found."
)

// NewsServiceOptions groups dependencies for NewsService.
type NewsServiceOptions struct {
	Gateway ports.NewsGateway
	Logger  *slog.Logger
}

// NewsService lists and uploads news items through the gateway.
type NewsService struct {
	gateway ports.NewsGateway
	logger  *slog.Logger
}

// NewNewsService constructs a new NewsService.
func NewNewsService(opts NewsServiceOptions) *NewsService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsService{
		gateway: opts.Gateway,
		logger:  logger.With("component", "news_service"),
	}
}

// List fetches every item once. No paging, no retry.
func (s *NewsService) List(ctx context.Context) (model.NewsList, error) {
	list, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch news failed", "error", err)
		return model.NewsList{}, fmt.Errorf("list news: %w", err)
	}
	return list, nil
}

// Upload validates the submission and posts it to the gateway.
func (s *NewsService) Upload(ctx context.Context, sub model.NewsSubmission) error {
	if err := sub.Validate(); err != nil {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeValidation,
			Message: err.Error(),
			Field:   submissionField(err),
			Cause:   err,
		}
	}

	if err := s.gateway.Create(ctx, sub.CreateRequest()); err != nil {
		s.logger.ErrorContext(ctx, "upload failed",
			"title", sub.Title,
			"file_name", sub.FileName,
			"file_type", sub.FileType,
			"bytes", len(sub.Content),
			"error", err,
		)
		return fmt.Errorf("upload news: %w", err)
	}

	s.logger.InfoContext(ctx, "news uploaded", "title", sub.Title, "email", sub.Email)
	return nil
}

// UploadFailureMessage returns the banner text for a failed Upload.
func UploadFailureMessage(err error) string {
	if apperrors.IsValidation(err) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr.Message
		}
	}

	var rej *model.GatewayRejection
	if errors.As(err, &rej) {
		if rej.Reason == "" {
			return UploadFailedMessage
		}
		return UploadFailedMessage + ": " + rej.Reason
	}

	return SomethingWentWrong
}

// ListFailureMessage returns the error-state text for a failed List.
// Undecodable bodies surface their decode error; everything else is a fetch failure.
func ListFailureMessage(err error) string {
	if apperrors.IsMalformed(err) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Cause != nil {
			return appErr.Cause.Error()
		}
	}
	return FetchFailedMessage
}

func submissionField(err error) string {
	switch {
	case errors.Is(err, model.ErrTitleRequired):
		return "title"
	case errors.Is(err, model.ErrDescriptionRequired):
		return "description"
	case errors.Is(err, model.ErrImageRequired), errors.Is(err, model.ErrImageType):
		return "image"
	}
	return ""
}
