package category

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Categories []string `yaml:"categories"`
}

// LoadNamesFile reads a YAML document of the form
//
//	categories:
//	  - Comida
//	  - Transporte
func LoadNamesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseNames(data)
}

func ParseNames(data []byte) ([]string, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return f.Categories, nil
}

// Load picks the catalog source in priority order: file, inline names, DefaultNames.
func Load(file string, names []string) (Catalog, error) {
	switch {
	case file != "":
		fromFile, err := LoadNamesFile(file)
		if err != nil {
			return Catalog{}, err
		}
		return NewCatalog(fromFile)
	case len(names) > 0:
		return NewCatalog(names)
	default:
		return NewCatalog(DefaultNames)
	}
}
