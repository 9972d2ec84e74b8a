package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/talentbridge/portal/pkg/auth"
	"github.com/talentbridge/portal/pkg/gateway"
)

// Service wraps the gateway's document endpoints:
//
//   - GET    /api/documents/me
//   - GET    /api/entities/:type/:id/documents
//   - GET    /api/documents/:id
//   - POST   /api/documents (multipart)
//   - DELETE /api/documents/:id
type Service struct {
	client *gateway.Client
	logger hclog.Logger
}

// NewService creates a document service on top of client.
func NewService(client *gateway.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("documents"),
	}
}

// Upload describes a document upload.
type Upload struct {
	EntityType   string
	EntityID     string
	DocumentType string
	FileName     string
	ContentType  string
	Content      io.Reader
}

// Validate checks the upload before anything is sent.
func (u Upload) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.EntityType, validation.Required),
		validation.Field(&u.EntityID, validation.Required),
		validation.Field(&u.FileName, validation.Required, validation.Length(1, 255)),
		validation.Field(&u.Content, validation.NotNil),
	)
}

// GetMyDocuments lists the caller's own documents.
func (s *Service) GetMyDocuments(ctx context.Context, token string) ([]Document, error) {
	return s.list(ctx, "/api/documents/me", token)
}

// ListEntityDocuments lists the documents attached to one entity, e.g. a
// candidate or an application.
func (s *Service) ListEntityDocuments(ctx context.Context, entityType, entityID, token string) ([]Document, error) {
	path := fmt.Sprintf("/api/entities/%s/%s/documents",
		url.PathEscape(entityType), url.PathEscape(entityID))
	return s.list(ctx, path, token)
}

// GetDocument retrieves a single document.
func (s *Service) GetDocument(ctx context.Context, id, token string) (*Document, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var payload json.RawMessage
	if err := s.client.Get(ctx, documentPath(id), token, &payload); err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc := DecodeDocument(payload)
	return &doc, nil
}

// UploadDocument uploads a file as multipart/form-data.
func (s *Service) UploadDocument(ctx context.Context, up Upload, token string) (*Document, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}
	if err := up.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	form := gateway.NewForm()
	fields := [][2]string{
		{"entity_type", up.EntityType},
		{"entity_id", up.EntityID},
		{"document_type", up.DocumentType},
	}
	for _, kv := range fields {
		if kv[1] == "" {
			continue
		}
		if err := form.AddField(kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := form.AddFile("file", up.FileName, up.ContentType, up.Content); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	var payload json.RawMessage
	if err := s.client.Upload(ctx, "/api/documents", form, token, &payload); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := DecodeDocument(payload)
	s.logger.Debug("uploaded document", "id", doc.ID, "document_type", doc.DocumentType)
	return &doc, nil
}

// UploadFile uploads the file at path on fs. FileName defaults to the
// file's base name.
func (s *Service) UploadFile(ctx context.Context, fs afero.Fs, path string, up Upload, token string) (*Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if up.FileName == "" {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		up.FileName = info.Name()
	}
	up.Content = f

	return s.UploadDocument(ctx, up, token)
}

// DeleteDocument soft-deletes a document.
func (s *Service) DeleteDocument(ctx context.Context, id, token string) error {
	token, err := auth.Require(token)
	if err != nil {
		return err
	}

	if err := s.client.Delete(ctx, documentPath(id), token, nil); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *Service) list(ctx context.Context, path, token string) ([]Document, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var payload json.RawMessage
	if err := s.client.Get(ctx, path, token, &payload); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return DecodeDocuments(payload), nil
}

func documentPath(id string) string {
	return fmt.Sprintf("/api/documents/%s", url.PathEscape(id))
}
