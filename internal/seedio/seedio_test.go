package seedio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.json")
	if err := os.WriteFile(path, []byte(`[1, 2, 3.5]`), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := ReadVector(path)
	if err != nil {
		t.Fatalf("ReadVector: %v", err)
	}
	want := []float64{1, 2, 3.5}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("component %d: got %v, want %v", i, v[i], want[i])
		}
	}
}

func TestReadVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vs.json")
	if err := os.WriteFile(path, []byte(`[[1, 2], [3, 4]]`), 0o644); err != nil {
		t.Fatal(err)
	}
	vs, err := ReadVectors(path)
	if err != nil {
		t.Fatalf("ReadVectors: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vs))
	}
}

func TestReadVectorRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadVector(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
