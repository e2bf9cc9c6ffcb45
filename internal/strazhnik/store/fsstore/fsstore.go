// Package fsstore keeps credentials, requests and documents as plain files in
// managed directories. Writes overwrite in place; there is no locking and no
// atomic rename, the stores assume a single process on a single workstation.
package fsstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// encodeIndented renders v as human-readable JSON with non-ASCII and HTML
// characters left as-is.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", store.ErrStorageWrite, dir, err)
	}
	return nil
}
