// Package catalog holds the file-backed catalog source.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
)

const (
	usersFile       = "users.json"
	experiencesFile = "experiences.json"
)

// FileSource reads the catalog from disk. Path is either a single JSON
// document with "members" and "experiences" keys, or a directory holding
// users.json and experiences.json arrays.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource rooted at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file" }

// Load reads the catalog. Every failure wraps domain.ErrDataLoad.
func (s *FileSource) Load(ctx context.Context) (*ports.CatalogDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
	}
	if info.IsDir() {
		return s.loadDir()
	}
	return s.loadDocument()
}

func (s *FileSource) loadDocument() (*ports.CatalogDocument, error) {
	var raw struct {
		Members     *[]domain.User       `json:"members"`
		Experiences *[]domain.Experience `json:"experiences"`
	}
	if err := decodeFile(s.path, &raw); err != nil {
		return nil, err
	}
	if raw.Members == nil {
		return nil, fmt.Errorf("%w: %s: missing \"members\"", domain.ErrDataLoad, s.path)
	}
	if raw.Experiences == nil {
		return nil, fmt.Errorf("%w: %s: missing \"experiences\"", domain.ErrDataLoad, s.path)
	}
	return &ports.CatalogDocument{Members: *raw.Members, Experiences: *raw.Experiences}, nil
}

func (s *FileSource) loadDir() (*ports.CatalogDocument, error) {
	var doc ports.CatalogDocument
	if err := decodeFile(filepath.Join(s.path, usersFile), &doc.Members); err != nil {
		return nil, err
	}
	if err := decodeFile(filepath.Join(s.path, experiencesFile), &doc.Experiences); err != nil {
		return nil, err
	}
	if doc.Members == nil {
		doc.Members = []domain.User{}
	}
	if doc.Experiences == nil {
		doc.Experiences = []domain.Experience{}
	}
	return &doc, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", domain.ErrDataLoad, path)
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrDataLoad, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrDataLoad, path, err)
	}
	return nil
}
