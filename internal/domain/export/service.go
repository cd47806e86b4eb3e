package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/darkroompro/devcalc/pkg/errors"
	"github.com/darkroompro/devcalc/pkg/util"
)

const defaultPrefix = "exports"

// Service writes calculation exports to object storage and reads them back.
type Service interface {
	Export(ctx context.Context, req Request) (Artifact, error)
	Fetch(ctx context.Context, key string) (Download, error)
}

type service struct {
	prefix  string
	storage ObjectStorage
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires the export service.
func NewService(cfg Config, storage ObjectStorage, logger *slog.Logger) Service {
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &service{
		prefix:  prefix,
		storage: storage,
		logger:  logger.With("component", "export.service"),
		now:     util.NowUTC,
		newID:   uuid.NewString,
	}
}

func (s *service) Export(ctx context.Context, req Request) (Artifact, error) {
	format, err := ParseFormat(req.Format)
	if err != nil {
		return Artifact{}, err
	}
	if strings.TrimSpace(req.Calculation.FilmName) == "" {
		return Artifact{}, apperrors.Wrap("invalid_input", "calculation is required", nil)
	}

	now := s.now()
	data, mimeType, err := Render(Record{Calculation: req.Calculation, Timestamp: now, Format: format})
	if err != nil {
		return Artifact{}, err
	}

	key := s.objectKey(now, format)
	stored, err := s.storage.Put(ctx, key, data, mimeType)
	if err != nil {
		s.logger.Error("export upload failed", "key", key, "error", err)
		return Artifact{}, apperrors.Wrap("storage_error", "failed to store export", err)
	}
	s.logger.Info("calculation exported", "key", key, "format", format, "size", stored.Size)
	return Artifact{
		Key:       stored.Key,
		Format:    format,
		MimeType:  mimeType,
		Size:      stored.Size,
		ETag:      stored.ETag,
		CreatedAt: now,
	}, nil
}

func (s *service) Fetch(ctx context.Context, key string) (Download, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if !s.ownsKey(key) {
		return Download{}, apperrors.Wrap("invalid_input", "invalid export key", nil)
	}
	body, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return Download{}, apperrors.Wrap("export_not_found", fmt.Sprintf("export not found: %s", key), err)
		}
		return Download{}, apperrors.Wrap("storage_error", "failed to fetch export", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return Download{}, apperrors.Wrap("storage_error", "failed to read export", err)
	}
	return Download{Key: key, MimeType: mimeFor(key), Data: data}, nil
}

// objectKey lays artifacts out as <prefix>/<yyyy>/<mm>/<dd>/<uuid>.<ext>.
func (s *service) objectKey(ts time.Time, format Format) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s.%s", s.prefix, ts.Year(), int(ts.Month()), ts.Day(), s.newID(), format)
}

func (s *service) ownsKey(key string) bool {
	if key == "" || path.Clean(key) != key {
		return false
	}
	return strings.HasPrefix(key, s.prefix+"/")
}
