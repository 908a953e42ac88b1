package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PublicPrefix is the URL path prefix under which uploaded files are served.
const PublicPrefix = "uploads"

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("file is not an image")
)

type Config struct {
	Dir     string `envconfig:"UPLOADS_DIR" default:"uploads"`
	MaxSize int64  `envconfig:"UPLOADS_MAX_SIZE" default:"5242880"`
}

// Storage keeps uploaded images and returns the path they are served from.
type Storage interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// Local writes files to a directory on disk.
type Local struct {
	dir     string
	maxSize int64
	now     func() time.Time
}

func NewLocal(cfg Config) *Local {
	return &Local{
		dir:     cfg.Dir,
		maxSize: cfg.MaxSize,
		now:     time.Now,
	}
}

func (s *Local) Dir() string {
	return s.dir
}

func (s *Local) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "MkdirAll")
	}
	filename := fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], cleanName(name, mime.Extension()))
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", errors.Wrap(err, "WriteFile")
	}
	return PublicPrefix + "/" + filename, nil
}

func (s *Local) Remove(_ context.Context, path string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(path)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "Remove")
	}
	return nil
}

// cleanName keeps the base name of an upload with only URL-safe characters and the detected extension.
func cleanName(name, ext string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, base)
	if base == "" {
		base = "cover"
	}
	return base + ext
}
