// Package documents maps the gateway's document records onto one canonical
// shape and exposes typed helpers for the document endpoints.
package documents

// Document types the portal knows how to label. The gateway may send others;
// they are passed through unchanged.
const (
	TypeResume      = "resume"
	TypeCoverLetter = "cover_letter"
	TypeOfferLetter = "offer_letter"
	TypeContract    = "contract"
	TypeIDDocument  = "id_document"
	TypeOther       = "other"
)

// Document statuses.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// DefaultFileName is used for documents whose backend record has no name.
const DefaultFileName = "Document"

// Record is an untyped backend record as decoded from JSON.
type Record map[string]any

// Document is the canonical document record.
type Document struct {
	ID               string         `json:"id" yaml:"id"`
	EntityType       string         `json:"entity_type" yaml:"entity_type"`
	EntityID         string         `json:"entity_id" yaml:"entity_id"`
	DocumentType     string         `json:"document_type" yaml:"document_type"`
	FileName         string         `json:"file_name" yaml:"file_name"`
	FilePath         string         `json:"file_path" yaml:"file_path"`
	FileSize         int64          `json:"file_size" yaml:"file_size"`
	MimeType         string         `json:"mime_type" yaml:"mime_type"`
	StorageBucket    string         `json:"storage_bucket" yaml:"storage_bucket"`
	Status           string         `json:"status" yaml:"status"`
	ProcessingStatus string         `json:"processing_status" yaml:"processing_status"`
	Metadata         map[string]any `json:"metadata" yaml:"metadata"`
	CreatedAt        string         `json:"created_at" yaml:"created_at"`
	UpdatedAt        string         `json:"updated_at" yaml:"updated_at"`
	DownloadURL      string         `json:"download_url" yaml:"download_url"`
}

// IsDeleted reports whether the document has been soft-deleted.
func (d Document) IsDeleted() bool {
	return d.Status == StatusDeleted
}

// Record returns d in the canonical wire spelling.
func (d Document) Record() Record {
	var metadata any
	if d.Metadata != nil {
		metadata = d.Metadata
	}
	return Record{
		"id":                d.ID,
		"entity_type":       d.EntityType,
		"entity_id":         d.EntityID,
		"document_type":     d.DocumentType,
		"file_name":         d.FileName,
		"file_path":         d.FilePath,
		"file_size":         d.FileSize,
		"mime_type":         d.MimeType,
		"storage_bucket":    d.StorageBucket,
		"status":            d.Status,
		"processing_status": d.ProcessingStatus,
		"metadata":          metadata,
		"created_at":        d.CreatedAt,
		"updated_at":        d.UpdatedAt,
		"download_url":      d.DownloadURL,
	}
}
