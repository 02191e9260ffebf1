package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is the decoded shape of a catalog file.
type Document struct {
	Currency        string                 `mapstructure:"currency"`
	Hotels          []domain.Accommodation `mapstructure:"hotels"`
	Intents         []domain.IntentRule    `mapstructure:"intents"`
	ServiceKeywords []string               `mapstructure:"serviceKeywords"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultDocument, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads one or more catalog documents (YAML or JSON, chosen by extension) and
// merges them in order.
func Load(paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no catalog files given", domain.ErrInvalidCatalog)
	}

	var merged Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		doc, err := Decode(data, filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
		}
		merged = merge(merged, doc)
	}

	return merged.Build()
}

// Parse decodes a single document and builds the catalog from it.
func Parse(data []byte, ext string) (*Catalog, error) {
	doc, err := Decode(data, ext)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Decode turns raw JSON or YAML into a Document. Anything that is not ".json" is read as YAML.
// Values are weakly typed, so a price written as "120" is accepted.
func Decode(data []byte, ext string) (Document, error) {
	var raw map[string]any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
		}
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Document{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return doc, nil
}

// Build validates the document and returns the catalog.
func (d Document) Build() (*Catalog, error) {
	return New(d.Currency, d.Hotels, d.Intents, d.ServiceKeywords)
}

func merge(a, b Document) Document {
	if b.Currency != "" {
		a.Currency = b.Currency
	}
	a.Hotels = append(a.Hotels, b.Hotels...)
	a.Intents = append(a.Intents, b.Intents...)
	a.ServiceKeywords = append(a.ServiceKeywords, b.ServiceKeywords...)
	return a
}
