package documents

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
)

// field is the ordered list of source keys accepted for one canonical
// field. Earlier keys win.
type field []string

// aliases lists canonical, then its camelCase spelling, then any legacy
// spellings.
func aliases(canonical string, legacy ...string) field {
	f := field{canonical}
	if camel := strcase.ToLowerCamel(canonical); camel != canonical {
		f = append(f, camel)
	}
	return append(f, legacy...)
}

var (
	fieldID               = aliases("id", "document_id", "documentId", "uuid")
	fieldEntityType       = aliases("entity_type", "owner_type")
	fieldEntityID         = aliases("entity_id", "owner_id")
	fieldDocumentType     = aliases("document_type", "type", "doc_type")
	fieldFileName         = aliases("file_name", "filename", "name", "original_name")
	fieldFilePath         = aliases("file_path", "path", "storage_path", "key")
	fieldFileSize         = aliases("file_size", "size", "size_bytes")
	fieldMimeType         = aliases("mime_type", "content_type", "contentType")
	fieldStorageBucket    = aliases("storage_bucket", "bucket")
	fieldStatus           = aliases("status")
	fieldProcessingStatus = aliases("processing_status")
	fieldMetadata         = aliases("metadata", "meta")
	fieldCreatedAt        = aliases("created_at", "uploaded_at")
	fieldUpdatedAt        = aliases("updated_at")
	fieldDownloadURL      = aliases("download_url", "url", "signed_url")
	fieldDeletedAt        = aliases("deleted_at")
)

// first returns the first alias whose value conv accepts.
func first[T any](rec Record, f field, conv func(any) (T, bool)) (T, bool) {
	for _, key := range f {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if out, ok := conv(v); ok {
			return out, true
		}
	}
	var zero T
	return zero, false
}

func stringOr(rec Record, f field, def string) string {
	if s, ok := first(rec, f, asString); ok {
		return s
	}
	return def
}

func timestamp(rec Record, f field) string {
	s, ok := first(rec, f, asString)
	if !ok {
		return ""
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// NormalizeDocument maps a backend record of unknown spelling onto the
// canonical Document. It never fails; missing fields take their defaults.
func NormalizeDocument(rec Record) Document {
	doc := Document{
		ID:               stringOr(rec, fieldID, ""),
		EntityType:       stringOr(rec, fieldEntityType, ""),
		EntityID:         stringOr(rec, fieldEntityID, ""),
		DocumentType:     stringOr(rec, fieldDocumentType, TypeOther),
		FileName:         stringOr(rec, fieldFileName, DefaultFileName),
		FilePath:         stringOr(rec, fieldFilePath, ""),
		MimeType:         stringOr(rec, fieldMimeType, ""),
		StorageBucket:    stringOr(rec, fieldStorageBucket, ""),
		ProcessingStatus: stringOr(rec, fieldProcessingStatus, ""),
		CreatedAt:        timestamp(rec, fieldCreatedAt),
		UpdatedAt:        timestamp(rec, fieldUpdatedAt),
		DownloadURL:      stringOr(rec, fieldDownloadURL, ""),
	}

	if n, ok := first(rec, fieldFileSize, asNumber); ok {
		doc.FileSize = n
	}

	if m, ok := first(rec, fieldMetadata, asObject); ok {
		doc.Metadata = m
	}

	doc.Status = StatusActive
	if s, ok := first(rec, fieldStatus, asString); ok {
		doc.Status = s
	} else if _, deleted := first(rec, fieldDeletedAt, asString); deleted {
		doc.Status = StatusDeleted
	}

	return doc
}

// NormalizeDocuments normalizes every element of a JSON array, keeping
// order. Anything that is not an array yields an empty slice.
func NormalizeDocuments(raw any) []Document {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []Record:
		for _, r := range v {
			items = append(items, r)
		}
	case []map[string]any:
		for _, r := range v {
			items = append(items, r)
		}
	default:
		return []Document{}
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, NormalizeDocument(toRecord(item)))
	}
	return docs
}

// DecodeDocument normalizes a single JSON payload.
func DecodeDocument(payload json.RawMessage) Document {
	return NormalizeDocument(toRecord(decodeAny(payload)))
}

// DecodeDocuments normalizes a JSON array payload.
func DecodeDocuments(payload json.RawMessage) []Document {
	return NormalizeDocuments(decodeAny(payload))
}

func decodeAny(payload json.RawMessage) any {
	var v any
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func toRecord(v any) Record {
	switch r := v.(type) {
	case Record:
		return r
	case map[string]any:
		return Record(r)
	default:
		return Record{}
	}
}

// asString accepts non-blank strings and renders numbers as strings.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// asNumber accepts non-negative numbers and numeric strings that fit in an
// int64, rejecting blanks, NaN and infinities. Fractions are truncated.
func asNumber(v any) (int64, bool) {
	switch t := v.(type) {
	case bool:
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
		v = strings.TrimSpace(t)
	}

	var f float64
	if err := mapstructure.WeakDecode(v, &f); err != nil {
		return 0, false
	}
	if math.IsNaN(f) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// asObject accepts JSON objects and strings holding a JSON object.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Record:
		return map[string]any(t), true
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(t), &m); err == nil && m != nil {
			return m, true
		}
	}
	return nil, false
}
