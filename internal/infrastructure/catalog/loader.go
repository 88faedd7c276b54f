package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

type catalogFile struct {
	Domains []domain.DomainInfo `yaml:"domains"`
}

// Load reads a domain catalogue override from a YAML file. An empty path
// yields the built-in catalogue.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(file.Domains) == 0 {
		return nil, fmt.Errorf("catalog file %s declares no domains", path)
	}

	for i, entry := range file.Domains {
		if entry.Name == "" {
			return nil, fmt.Errorf("catalog file %s: domain %d has no name", path, i)
		}
	}
	return domain.NewCatalog(file.Domains), nil
}
