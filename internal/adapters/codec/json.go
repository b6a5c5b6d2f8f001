package codec

import (
	"encoding/json"
	"fmt"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// JSON is the native JSON form
type JSON struct {
	Indent bool
}

var _ ports.Codec = JSON{}

func (c JSON) Marshal(doc *domain.Document) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(toFile(doc), "", "  ")
	}
	return json.Marshal(toFile(doc))
}

func (JSON) Unmarshal(data []byte) (*domain.Document, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON bookmarks: %w", err)
	}
	return fromFile(f)
}
