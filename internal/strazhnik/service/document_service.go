package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

var (
	ErrUnknownDocumentKind = errors.New("unknown document kind")
	ErrDocumentUnreadable  = errors.New("document cannot be read")
	ErrDocumentTooLarge    = errors.New("document too large")
	ErrDocumentWrongFormat = errors.New("document format not allowed")
)

// DocumentPolicy limits what may be attached to one document slot.
type DocumentPolicy struct {
	MaxBytes   int64
	Extensions []string // lower-case, without the dot
}

var documentPolicies = map[types.DocumentKind]DocumentPolicy{
	types.DocumentPhoto:        {MaxBytes: 2 << 20, Extensions: []string{"jpg", "jpeg", "png"}},
	types.DocumentPassportScan: {MaxBytes: 4 << 20, Extensions: []string{"jpg", "jpeg"}},
}

// DocumentLimits lists every policy, photo first.
func DocumentLimits() []types.DocumentLimit {
	kinds := []types.DocumentKind{types.DocumentPhoto, types.DocumentPassportScan}
	out := make([]types.DocumentLimit, 0, len(kinds))
	for _, k := range kinds {
		p := documentPolicies[k]
		out = append(out, types.DocumentLimit{
			Kind:       k,
			MaxBytes:   p.MaxBytes,
			Extensions: slices.Clone(p.Extensions),
		})
	}
	return out
}

const documentStampLayout = "20060102_150405"

type DocumentService struct {
	docs   store.DocumentStore
	logger *log.Logger
	now    func() time.Time
}

func NewDocumentService(docs store.DocumentStore, logger *log.Logger) *DocumentService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &DocumentService{docs: docs, logger: logger, now: time.Now}
}

// WithClock replaces the time source used to name stored documents.
func (s *DocumentService) WithClock(now func() time.Time) *DocumentService {
	s.now = now
	return s
}

// Upload copies the file at sourcePath into the document store and returns
// the generated name {kind}_{YYYYMMDD_HHMMSS}{ext}. The source is left
// untouched. Two uploads of one kind in the same second share a name and the
// later one wins.
func (s *DocumentService) Upload(ctx context.Context, kind types.DocumentKind, sourcePath string) (string, error) {
	policy, ok := documentPolicies[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentKind, kind)
	}

	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return "", fmt.Errorf("%w: no file selected", ErrDocumentUnreadable)
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrDocumentUnreadable, sourcePath)
	}

	if info.Size() > policy.MaxBytes {
		return "", fmt.Errorf("%w: maximum file size is %s", ErrDocumentTooLarge, humanize.IBytes(uint64(policy.MaxBytes)))
	}

	ext := filepath.Ext(sourcePath)
	if !slices.Contains(policy.Extensions, strings.ToLower(strings.TrimPrefix(ext, "."))) {
		return "", fmt.Errorf("%w: %s accepts %s only", ErrDocumentWrongFormat, kind, strings.ToUpper(strings.Join(policy.Extensions, "/")))
	}

	name := fmt.Sprintf("%s_%s%s", kind, s.now().Format(documentStampLayout), ext)

	src := &trackedReader{r: f}
	if err := s.docs.Put(ctx, name, src); err != nil {
		if src.err != nil {
			return "", fmt.Errorf("%w: %w", ErrDocumentUnreadable, src.err)
		}
		return "", err
	}

	s.logger.Printf("document stored kind=%s name=%s size=%s", kind, name, humanize.IBytes(uint64(info.Size())))
	return name, nil
}

// trackedReader remembers a read failure so it can be told apart from a
// failure on the write side of a copy.
type trackedReader struct {
	r   io.Reader
	err error
}

func (t *trackedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
