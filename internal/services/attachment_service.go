package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxAttachmentBytes = 10 << 20

// Presigner is the slice of object storage the attachment flow needs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error)
	FileURL(key string) string
}

type AttachmentService struct {
	requests repository.RequestRepository
	storage  Presigner
	log      *logger.Logger
}

func NewAttachmentService(requests repository.RequestRepository, storage Presigner, l *logger.Logger) *AttachmentService {
	if l == nil {
		l = logger.NewNop()
	}
	return &AttachmentService{requests: requests, storage: storage, log: l}
}

type PresignInput struct {
	RequestID   uuid.UUID
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignResult struct {
	UploadURL string
	UploadKey string
	FileURL   string
	Headers   map[string]string
}

// CreatePresignedUpload returns a URL the client PUTs the file to, and
// records the eventual file URL on the request.
func (s *AttachmentService) CreatePresignedUpload(ctx context.Context, in PresignInput) (PresignResult, error) {
	if s.storage == nil {
		return PresignResult{}, fmt.Errorf("%w: attachment storage", aid_errors.ErrNotConfigured)
	}
	if in.RequestID == uuid.Nil || strings.TrimSpace(in.FileName) == "" || in.ContentType == "" {
		return PresignResult{}, aid_errors.ErrInvalidInput
	}
	if in.FileSize <= 0 || in.FileSize > maxAttachmentBytes {
		return PresignResult{}, aid_errors.ErrInvalidInput
	}

	if _, err := s.requests.GetByID(ctx, in.RequestID); err != nil {
		return PresignResult{}, err
	}

	key := buildObjectKey(in.RequestID, in.FileName)
	uploadURL, headers, err := s.storage.PresignPut(ctx, key, in.ContentType, in.FileSize)
	if err != nil {
		return PresignResult{}, err
	}

	fileURL := s.storage.FileURL(key)
	if err := s.requests.SetAttachments(ctx, in.RequestID, fileURL); err != nil {
		return PresignResult{}, err
	}

	s.log.WithContext(ctx).Info("attachment presigned",
		zap.String("request_id", in.RequestID.String()),
		zap.String("key", key),
		zap.Int64("size", in.FileSize))

	return PresignResult{
		UploadURL: uploadURL,
		UploadKey: key,
		FileURL:   fileURL,
		Headers:   headers,
	}, nil
}

func buildObjectKey(requestID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("requests/%s/%s%s", requestID.String(), uuid.New().String(), ext)
}
