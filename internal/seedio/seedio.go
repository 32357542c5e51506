// Package seedio loads vectors for the CLI from JSON files: a single
// vector for build/search, or an array of vectors for insert.
//
// This is plain JSON shaped to the CLI's needs, the same choice most
// tools reach for when reading config or request bodies from disk.
package seedio

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadVector reads a single JSON array of numbers from path.
func ReadVector(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seedio: reading %s: %w", path, err)
	}
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("seedio: parsing %s as a vector: %w", path, err)
	}
	return v, nil
}

// ReadVectors reads a JSON array of arrays of numbers from path.
func ReadVectors(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seedio: reading %s: %w", path, err)
	}
	var vs [][]float64
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("seedio: parsing %s as a vector list: %w", path, err)
	}
	return vs, nil
}
