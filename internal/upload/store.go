package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const defaultExt = ".jpg"

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// FileStore writes uploads under a directory with random names.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save stores data as "<uuid hex><ext>", keeping the lower-cased extension
// of originalName (".jpg" when it has none), and returns the stored name.
func (s *FileStore) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + storedExt(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	return name, nil
}

func storedExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !safeExt.MatchString(ext) {
		return defaultExt
	}
	return ext
}
