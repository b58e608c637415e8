package storage

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ott-manager.app/api/models"
)

//go:embed data/catalog.yaml
var sampleData embed.FS

// Source loads the catalog once at startup. Nothing writes through it
// while the server runs.
type Source interface {
	LoadSubscriptions(ctx context.Context) ([]models.Subscription, error)
	LoadDeployments(ctx context.Context) ([]models.Deployment, error)
	Close() error
}

// CatalogFile is the on-disk layout shared by the JSON and YAML formats.
type CatalogFile struct {
	Subscriptions []models.Subscription `json:"subscriptions" yaml:"subscriptions"`
	Deployments   []models.Deployment   `json:"deployments" yaml:"deployments"`
}

type MemoryStorage struct {
	Subscriptions []models.Subscription
	Deployments   []models.Deployment
}

type FileStorage struct {
	filepath string
	catalog  CatalogFile
}

func (m *MemoryStorage) LoadSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	out := make([]models.Subscription, len(m.Subscriptions))
	copy(out, m.Subscriptions)
	return out, nil
}

func (m *MemoryStorage) LoadDeployments(ctx context.Context) ([]models.Deployment, error) {
	out := make([]models.Deployment, len(m.Deployments))
	copy(out, m.Deployments)
	return out, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func NewFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{filepath: path}
	err := fs.loadFromFile()
	return fs, err
}

// NewSampleStorage serves the catalog bundled with the binary.
func NewSampleStorage() (*FileStorage, error) {
	data, err := sampleData.ReadFile("data/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read sample catalog: %w", err)
	}

	catalog, err := DecodeCatalog("catalog.yaml", data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sample catalog: %w", err)
	}

	return &FileStorage{filepath: "sample", catalog: catalog}, nil
}

func (f *FileStorage) loadFromFile() error {
	data, err := os.ReadFile(f.filepath)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", f.filepath, err)
	}

	catalog, err := DecodeCatalog(f.filepath, data)
	if err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", f.filepath, err)
	}
	f.catalog = catalog

	return nil
}

// DecodeCatalog parses JSON or YAML depending on the file extension.
// Unknown fields are rejected so typos in a data file surface at startup.
func DecodeCatalog(name string, data []byte) (CatalogFile, error) {
	var catalog CatalogFile

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&catalog); err != nil {
			return CatalogFile{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&catalog); err != nil {
			return CatalogFile{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return CatalogFile{}, fmt.Errorf("unsupported catalog format %q", filepath.Ext(name))
	}

	return catalog, nil
}

func (f *FileStorage) LoadSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	out := make([]models.Subscription, len(f.catalog.Subscriptions))
	copy(out, f.catalog.Subscriptions)
	return out, nil
}

func (f *FileStorage) LoadDeployments(ctx context.Context) ([]models.Deployment, error) {
	out := make([]models.Deployment, len(f.catalog.Deployments))
	copy(out, f.catalog.Deployments)
	return out, nil
}

func (f *FileStorage) Close() error {
	return nil
}
