package data

import (
	"os"

	"str-underwriter/internal/model"
)

// LoadPropertyJSON reads a saved lookup response from disk.
func LoadPropertyJSON(path string) (*model.Property, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeProperty(raw)
}
