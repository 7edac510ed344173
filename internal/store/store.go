package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-tidyhome/internal/config"
)

// Store persists the document as a single JSON file.
type Store struct {
	path string
}

// New creates a store over the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath resolves the per-user document location, creating the app
// directory if needed.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}
	appDir := filepath.Join(configDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.StoreFileName), nil
}

// Load reads the persisted document. A missing or unreadable file is not an
// error: the documented empty-default document is substituted so the app
// always starts, and the condition is logged.
func (s *Store) Load() *Document {
	log := slog.With(
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.path,
	)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info(config.MsgDocMissing)
		} else {
			log.Warn(config.MsgDocCorrupt, config.LogKeyError, err)
		}
		return DefaultDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn(config.MsgDocCorrupt, config.LogKeyError, err)
		return DefaultDocument()
	}
	doc.Normalize()

	log.Debug(config.MsgDocLoaded, config.LogKeySizeBytes, len(data))
	return &doc
}

// Save writes the whole document. Callers treat it as fire-and-forget after
// every mutation; the error is returned for logging only.
func (s *Store) Save(doc *Document) error {
	data, err := Export(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDocWrite, err)
	}
	slog.Debug(config.MsgDocSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.path,
		config.LogKeySizeBytes, len(data),
	)
	return nil
}

// Export renders the document as indented JSON. The output is deterministic,
// so exporting and re-importing a document round-trips byte for byte.
func Export(doc *Document) ([]byte, error) {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDocEncode, err)
	}
	return data, nil
}

// Import parses a user-supplied document. Malformed or invalid payloads are
// rejected with an error and no state is touched; the caller replaces its
// current document only on success.
func Import(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrImportParse, err)
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrImportInvalid, err)
	}
	return &doc, nil
}
