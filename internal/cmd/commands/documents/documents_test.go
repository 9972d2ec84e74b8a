package documents

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/pkg/documents"
	"github.com/talentbridge/portal/pkg/gateway"
	"github.com/talentbridge/portal/pkg/gateway/gatewaytest"
)

const testToken = "candidate-token"

func newBase(t *testing.T) (*base.Command, *cli.MockUi, *gatewaytest.Server) {
	t.Helper()

	fake := gatewaytest.NewServer()
	t.Cleanup(fake.Close)

	ui := cli.NewMockUi()
	b := base.NewCommand(hclog.NewNullLogger(), ui)
	b.Env = gateway.Env{
		gateway.EnvInternalURL: fake.URL,
		"PORTAL_TOKEN":         testToken,
	}
	return b, ui, fake
}

func TestUploadThenList(t *testing.T) {
	b, ui, _ := newBase(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/resume.pdf", []byte("%PDF-1.7"), 0o644))

	upload := &UploadCommand{Command: b, Fs: fs}
	code := upload.Run([]string{
		"-entity-type", "candidate", "-entity-id", "cand_1", "-type", "resume",
		"-output", "json", "/tmp/resume.pdf",
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var uploaded documents.Document
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &uploaded))
	assert.Equal(t, "resume.pdf", uploaded.FileName)
	assert.Equal(t, "application/pdf", uploaded.MimeType)
	assert.Equal(t, int64(8), uploaded.FileSize)
	assert.Equal(t, documents.TypeResume, uploaded.DocumentType)

	ui.OutputWriter.Reset()
	list := &ListCommand{Command: b}
	code = list.Run([]string{"-output", "json"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var docs []documents.Document
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, uploaded.ID, docs[0].ID)
}

func TestList_HidesDeleted(t *testing.T) {
	b, ui, fake := newBase(t)
	fake.PutDocument(map[string]any{
		"id": "doc_live", "entity_type": "candidate", "entity_id": "cand_1", "filename": "a.pdf",
	})
	fake.PutDocument(map[string]any{
		"id": "doc_gone", "entity_type": "candidate", "entity_id": "cand_1", "filename": "b.pdf",
		"deleted_at": "2024-02-01T00:00:00Z",
	})

	list := &ListCommand{Command: b}
	code := list.Run([]string{"-entity-type", "candidate", "-entity-id", "cand_1", "-output", "json"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var docs []documents.Document
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "doc_live", docs[0].ID)

	ui.OutputWriter.Reset()
	list = &ListCommand{Command: b}
	code = list.Run([]string{"-entity-type", "candidate", "-entity-id", "cand_1", "-include-deleted", "-output", "json"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &docs))
	assert.Len(t, docs, 2)
}

func TestList_EntityFlagsTogether(t *testing.T) {
	b, ui, _ := newBase(t)

	list := &ListCommand{Command: b}
	assert.Equal(t, 1, list.Run([]string{"-entity-type", "candidate"}))
	assert.Contains(t, ui.ErrorWriter.String(), "must be used together")
}

func TestGet_YAML(t *testing.T) {
	b, ui, fake := newBase(t)
	fake.PutDocument(map[string]any{"id": "doc_1", "name": "offer.pdf", "size": "2048"})

	get := &GetCommand{Command: b}
	code := get.Run([]string{"doc_1"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "id: doc_1")
	assert.Contains(t, out, "file_name: offer.pdf")
	assert.Contains(t, out, "file_size: 2048")
	assert.Contains(t, out, "status: active")
}

func TestGet_NotFound(t *testing.T) {
	b, ui, _ := newBase(t)

	get := &GetCommand{Command: b}
	assert.Equal(t, 1, get.Run([]string{"missing"}))
	assert.Contains(t, ui.ErrorWriter.String(), "Document not found")
}

func TestDelete_ReportsEveryFailure(t *testing.T) {
	b, ui, fake := newBase(t)
	fake.PutDocument(map[string]any{"id": "doc_1"})

	del := &DeleteCommand{Command: b}
	code := del.Run([]string{"doc_1", "missing_a", "missing_b"})
	assert.Equal(t, 1, code)

	assert.Contains(t, ui.OutputWriter.String(), "Deleted document doc_1")
	errOut := ui.ErrorWriter.String()
	assert.Contains(t, errOut, "2 errors occurred")
	assert.Contains(t, errOut, "missing_a")
	assert.Contains(t, errOut, "missing_b")
}

func TestOpen(t *testing.T) {
	b, ui, fake := newBase(t)
	fake.PutDocument(map[string]any{
		"id": "doc_1", "filename": "contract.pdf", "signed_url": "https://files.example.com/doc_1",
	})
	fake.PutDocument(map[string]any{"id": "doc_2"})

	var opened []string
	open := &OpenCommand{Command: b, OpenURL: func(url string) error {
		opened = append(opened, url)
		return nil
	}}
	code := open.Run([]string{"doc_1"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Equal(t, []string{"https://files.example.com/doc_1"}, opened)

	open = &OpenCommand{Command: b, OpenURL: func(string) error {
		t.Fatal("browser must not be opened without a URL")
		return nil
	}}
	assert.Equal(t, 1, open.Run([]string{"doc_2"}))
	assert.Contains(t, ui.ErrorWriter.String(), "has no download URL")
}

func TestMissingToken(t *testing.T) {
	b, ui, fake := newBase(t)
	delete(b.Env, "PORTAL_TOKEN")

	list := &ListCommand{Command: b}
	assert.Equal(t, 1, list.Run(nil))
	assert.Contains(t, ui.ErrorWriter.String(), "bearer token required")
	assert.Empty(t, fake.Requests())
}
