package documents

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/portal/pkg/auth"
	"github.com/talentbridge/portal/pkg/gateway"
	"github.com/talentbridge/portal/pkg/gateway/gatewaytest"
)

const testToken = "candidate-token"

func newTestService(t *testing.T) (*Service, *gatewaytest.Server) {
	t.Helper()

	fake := gatewaytest.NewServer()
	t.Cleanup(fake.Close)

	client, err := gateway.New(&gateway.Config{
		BaseURL: fake.URL,
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	return NewService(client, hclog.NewNullLogger()), fake
}

func TestService_UploadThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	uploaded, err := svc.UploadDocument(ctx, Upload{
		EntityType:   "candidate",
		EntityID:     "cand_1",
		DocumentType: TypeOfferLetter,
		FileName:     "offer.pdf",
		ContentType:  "application/pdf",
		Content:      strings.NewReader("%PDF-1.7 offer"),
	}, testToken)
	require.NoError(t, err)
	require.NotEmpty(t, uploaded.ID)

	doc, err := svc.GetDocument(ctx, uploaded.ID, testToken)
	require.NoError(t, err)

	assert.Equal(t, uploaded.ID, doc.ID)
	assert.Equal(t, TypeOfferLetter, doc.DocumentType)
	assert.Equal(t, StatusActive, doc.Status)
	assert.Equal(t, "offer.pdf", doc.FileName)
	assert.Equal(t, int64(len("%PDF-1.7 offer")), doc.FileSize)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, "portal-documents", doc.StorageBucket)
	assert.Equal(t, "candidate", doc.EntityType)
	assert.Equal(t, "cand_1", doc.EntityID)
	assert.Equal(t, "2024-01-01T09:00:00Z", doc.CreatedAt)
}

func TestService_UploadWithoutTypeDefaultsToOther(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.UploadDocument(context.Background(), Upload{
		EntityType: "candidate",
		EntityID:   "cand_1",
		FileName:   "notes.txt",
		Content:    strings.NewReader("hello"),
	}, testToken)
	require.NoError(t, err)

	assert.Equal(t, TypeOther, doc.DocumentType)
	assert.Equal(t, "application/octet-stream", doc.MimeType)
}

func TestService_UploadFile(t *testing.T) {
	svc, _ := newTestService(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/jo/resume.pdf", []byte("%PDF"), 0o644))

	doc, err := svc.UploadFile(context.Background(), fs, "/home/jo/resume.pdf", Upload{
		EntityType:   "candidate",
		EntityID:     "cand_2",
		DocumentType: TypeResume,
		ContentType:  "application/pdf",
	}, testToken)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", doc.FileName)
	assert.Equal(t, TypeResume, doc.DocumentType)
	assert.Equal(t, int64(4), doc.FileSize)
}

func TestService_UploadValidation(t *testing.T) {
	svc, fake := newTestService(t)

	_, err := svc.UploadDocument(context.Background(), Upload{EntityType: "candidate"}, testToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid upload")
	assert.Empty(t, fake.Requests())
}

func TestService_DeleteThenGetIsSoftDeleted(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	fake.PutDocument(map[string]any{
		"id":       "doc_7",
		"filename": "old.pdf",
		"owner":    testToken,
	})

	require.NoError(t, svc.DeleteDocument(ctx, "doc_7", testToken))

	doc, err := svc.GetDocument(ctx, "doc_7", testToken)
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, doc.Status)
	assert.True(t, doc.IsDeleted())
}

func TestService_GetMyDocuments(t *testing.T) {
	svc, fake := newTestService(t)

	fake.PutDocument(map[string]any{"id": "a", "name": "first.pdf", "owner": testToken})
	fake.PutDocument(map[string]any{"id": "b", "owner": "someone-else"})
	fake.PutDocument(map[string]any{"id": "c", "fileName": "third.pdf", "fileSize": 12, "owner": testToken})

	docs, err := svc.GetMyDocuments(context.Background(), testToken)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "first.pdf", docs[0].FileName)
	assert.Equal(t, "third.pdf", docs[1].FileName)
	assert.Equal(t, int64(12), docs[1].FileSize)
}

func TestService_ListEntityDocuments(t *testing.T) {
	svc, fake := newTestService(t)

	fake.PutDocument(map[string]any{"id": "a", "entity_type": "application", "entity_id": "app_1"})
	fake.PutDocument(map[string]any{"id": "b", "entity_type": "application", "entity_id": "app_2"})

	docs, err := svc.ListEntityDocuments(context.Background(), "application", "app_1", testToken)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)

	docs, err = svc.ListEntityDocuments(context.Background(), "application", "none", testToken)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestService_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetDocument(context.Background(), "missing", testToken)
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Document not found", apiErr.Message)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestService_MissingTokenSkipsNetwork(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetMyDocuments(ctx, "")
	assert.ErrorIs(t, err, auth.ErrTokenRequired)

	_, err = svc.GetDocument(ctx, "doc_1", "")
	assert.ErrorIs(t, err, auth.ErrTokenRequired)

	err = svc.DeleteDocument(ctx, "doc_1", "  ")
	assert.ErrorIs(t, err, auth.ErrTokenRequired)

	_, err = svc.UploadDocument(ctx, Upload{}, "")
	assert.ErrorIs(t, err, auth.ErrTokenRequired)

	assert.Empty(t, fake.Requests())
}

func TestService_WrongToken(t *testing.T) {
	svc, fake := newTestService(t)
	fake.RequireToken("the-right-one")

	_, err := svc.GetMyDocuments(context.Background(), testToken)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Missing or invalid bearer token", apiErr.Message)
	assert.Equal(t, "unauthorized", apiErr.Code)
}
