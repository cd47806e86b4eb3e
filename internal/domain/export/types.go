package export

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
)

// Format names an export serialisation.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ErrObjectNotFound is returned by storage when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Record is the document written for one exported calculation.
type Record struct {
	Calculation darkroom.Result `json:"calculation"`
	Timestamp   time.Time       `json:"timestamp"`
	Format      Format          `json:"format"`
}

// Request asks for a calculation to be exported in the given format.
type Request struct {
	Calculation darkroom.Result `json:"calculation"`
	Format      string          `json:"format"`
}

// Artifact describes a stored export.
type Artifact struct {
	Key       string    `json:"key"`
	Format    Format    `json:"format"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	ETag      string    `json:"etag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Download is a fetched artifact body.
type Download struct {
	Key      string
	MimeType string
	Data     []byte
}

// Config controls where artifacts are written.
type Config struct {
	Prefix string
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// ObjectStorage abstracts blob storage (memory, R2/S3/MinIO).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
