package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Form is a multipart/form-data payload. Parts are written in the order
// they are added.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	closed bool
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField adds a plain form field.
func (f *Form) AddField(name, value string) error {
	if f.closed {
		return fmt.Errorf("form already encoded")
	}
	return f.writer.WriteField(name, value)
}

// AddFile adds a file part read from r. An empty contentType is sent as
// application/octet-stream.
func (f *Form) AddFile(field, fileName, contentType string, r io.Reader) error {
	if f.closed {
		return fmt.Errorf("form already encoded")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(fileName)))
	h.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to write file part: %w", err)
	}
	return nil
}

// AddFileFromFS adds the file at path on fs as a file part named field.
func (f *Form) AddFileFromFS(fs afero.Fs, field, path, contentType string) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return f.AddFile(field, filepath.Base(path), contentType, file)
}

// ContentType returns the multipart content type including the boundary.
func (f *Form) ContentType() string {
	return f.writer.FormDataContentType()
}

// encode finalizes the form and returns its body. It is safe to call more
// than once.
func (f *Form) encode() ([]byte, error) {
	if !f.closed {
		if err := f.writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
		f.closed = true
	}
	return f.buf.Bytes(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
