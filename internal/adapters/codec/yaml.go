package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// YAML is the native tree in YAML, convenient for editing by hand
type YAML struct{}

var _ ports.Codec = YAML{}

func (YAML) Marshal(doc *domain.Document) ([]byte, error) {
	return yaml.Marshal(toFile(doc))
}

func (YAML) Unmarshal(data []byte) (*domain.Document, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML bookmarks: %w", err)
	}
	return fromFile(f)
}
