package decoders

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Descriptor delegates a decoder file to any resolvable codec URL.
type Descriptor struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ParseDescriptor parses a descriptor file body.
func ParseDescriptor(raw []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if d.Type == "" {
		return Descriptor{}, fmt.Errorf("%w: missing \"type\"", ErrInvalidDescriptor)
	}
	return d, nil
}

func isDescriptor(path string) bool {
	return strings.EqualFold(filepath.Ext(path), DescriptorExt)
}

// entryName derives the registry name of a file from its body.
func entryName(path string, raw []byte) string {
	if isDescriptor(path) {
		if d, err := ParseDescriptor(raw); err == nil && d.Name != "" {
			return d.Name
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
