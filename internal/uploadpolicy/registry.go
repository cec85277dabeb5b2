// Package uploadpolicy loads the upload limits and content-type defaults
// from an embedded YAML file so the binary carries its own policy.
package uploadpolicy

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AryanGore/LabDrop/internal/domain"
)

//go:embed config/policy.yaml
var configFiles embed.FS

type policyFile struct {
	MaxFileSizeBytes int64             `yaml:"max_file_size_bytes"`
	MaxBatchFiles    int               `yaml:"max_batch_files"`
	ContentTypes     map[string]string `yaml:"content_types"`
}

// Registry holds the active upload policy loaded from the embedded YAML
type Registry struct {
	policy policyFile
}

// New loads and validates the embedded policy file
func New() (*Registry, error) {
	data, err := configFiles.ReadFile("config/policy.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded policy: %w", err)
	}

	var p policyFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}

	if p.MaxFileSizeBytes <= 0 {
		return nil, fmt.Errorf("policy: max_file_size_bytes must be positive")
	}
	if p.MaxBatchFiles <= 0 {
		return nil, fmt.Errorf("policy: max_batch_files must be positive")
	}

	return &Registry{policy: p}, nil
}

// MaxFileSizeBytes returns the per-file size ceiling
func (r *Registry) MaxFileSizeBytes() int64 {
	return r.policy.MaxFileSizeBytes
}

// MaxBatchFiles returns the maximum number of files accepted in one batch
func (r *Registry) MaxBatchFiles() int {
	return r.policy.MaxBatchFiles
}

// CheckFileSize returns a validation error when size exceeds the per-file cap
func (r *Registry) CheckFileSize(size int64) error {
	if size > r.policy.MaxFileSizeBytes {
		return fmt.Errorf("%w: file of %d bytes exceeds the limit of %d bytes",
			domain.ErrValidation, size, r.policy.MaxFileSizeBytes)
	}
	return nil
}

// ResolveContentType returns the declared content type, falling back to the
// extension table and finally to application/octet-stream.
func (r *Registry) ResolveContentType(name, declared string) string {
	if declared != "" {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ct, ok := r.policy.ContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
