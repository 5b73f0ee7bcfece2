package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jobboard-api/internal/domain"
	s3infra "github.com/jobboard-api/internal/infrastructure/s3"
	"github.com/jobboard-api/internal/pkg/id"
)

const presignTTL = 15 * time.Minute

// allowedTypes maps a file kind to the content types accepted for it.
var allowedTypes = map[string][]string{
	domain.FileKindCV: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	domain.FileKindLogo: {
		"image/png",
		"image/jpeg",
	},
}

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Kind        string
	IsPrivate   bool
	UploaderID  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	UploadBase64(ctx context.Context, filename, base64Data, kind, uploaderID string) (*domain.File, error)
	Download(ctx context.Context, fileID, requesterID string, isStaff bool) (io.ReadCloser, *domain.File, error)
	GetBase64(ctx context.Context, fileID, requesterID string, isStaff bool) (*domain.File, string, error)
	URL(ctx context.Context, fileID, requesterID string, isStaff bool) (string, error)
	Delete(ctx context.Context, fileID, requesterID string, isStaff bool) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type service struct {
	s3   *s3infra.Store
	repo fileStore
}

func NewService(s3 *s3infra.Store, repo fileStore) Service {
	return &service{s3: s3, repo: repo}
}

func checkContentType(kind, contentType string) error {
	allowed, ok := allowedTypes[kind]
	if !ok {
		return nil // FileKindOther accepts anything
	}
	for _, t := range allowed {
		if t == contentType {
			return nil
		}
	}
	return fmt.Errorf("content type %s not allowed for %s: %w", contentType, kind, domain.ErrBadRequest)
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	if err := checkContentType(input.Kind, input.ContentType); err != nil {
		return nil, err
	}

	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("files/%s/%s", input.UploaderID, safeName)
	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	if _, err := s.s3.Upload(ctx, key, tee, input.ContentType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	f := &domain.File{
		FileID:           id.New(),
		Object:           key,
		Size:             input.Size,
		Type:             input.ContentType,
		Name:             safeName,
		Hash:             hex.EncodeToString(hasher.Sum(nil)),
		Kind:             input.Kind,
		IsPrivate:        input.IsPrivate,
		UploadedByUserID: input.UploaderID,
		Enable:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UploadBase64(ctx context.Context, filename, base64Data, kind, uploaderID string) (*domain.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", domain.ErrBadRequest)
	}
	safeName := sanitizeFilename(filename)
	contentType := contentTypeFromName(safeName)

	return s.Upload(ctx, UploadInput{
		Reader:      bytes.NewReader(decoded),
		Filename:    safeName,
		ContentType: contentType,
		Size:        int64(len(decoded)),
		Kind:        kind,
		IsPrivate:   kind == domain.FileKindCV, // CVs are private to their owner
		UploaderID:  uploaderID,
	})
}

// access loads a file and verifies the requester may read it.
func (s *service) access(ctx context.Context, fileID, requesterID string, isStaff bool) (*domain.File, error) {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !f.Enable {
		return nil, fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	if f.IsPrivate && f.UploadedByUserID != requesterID && !isStaff {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID, requesterID string, isStaff bool) (io.ReadCloser, *domain.File, error) {
	f, err := s.access(ctx, fileID, requesterID, isStaff)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.s3.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) GetBase64(ctx context.Context, fileID, requesterID string, isStaff bool) (*domain.File, string, error) {
	rc, f, err := s.Download(ctx, fileID, requesterID, isStaff)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", err
	}
	return f, base64.StdEncoding.EncodeToString(data), nil
}

func (s *service) URL(ctx context.Context, fileID, requesterID string, isStaff bool) (string, error) {
	f, err := s.access(ctx, fileID, requesterID, isStaff)
	if err != nil {
		return "", err
	}
	return s.s3.PresignedURL(ctx, f.Object, presignTTL)
}

func (s *service) Delete(ctx context.Context, fileID, requesterID string, isStaff bool) error {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if !f.Enable {
		return fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	if f.UploadedByUserID != requesterID && !isStaff {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	if err := s.s3.Delete(ctx, f.Object); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, fileID)
}

func contentTypeFromName(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".doc"):
		return "application/msword"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
