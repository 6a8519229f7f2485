package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

// LoadLayout reads a layout fixture. Testing helpers fail the test on error to
// keep table setup concise.
func LoadLayout(t *testing.T, path string) []*layout.Node {
	t.Helper()

	nodes, err := LoadLayoutFromPath(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return nodes
}

// LoadLayoutFromPath returns a layout tree without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadLayoutFromPath(path string) ([]*layout.Node, error) {
	if path == "" {
		return nil, errors.New("testsupport: layout path is required")
	}
	nodes, err := layout.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	return nodes, nil
}

// LoadData decodes a JSON or YAML data fixture into generic values.
func LoadData(t *testing.T, path string) any {
	t.Helper()

	data, err := LoadDataFromPath(path)
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	return data
}

// LoadDataFromPath decodes a JSON or YAML data fixture. YAML mappings decode
// to map[string]any so data pointers resolve the same way for both formats.
func LoadDataFromPath(path string) (any, error) {
	if path == "" {
		return nil, errors.New("testsupport: data path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read data: %w", err)
	}
	var out any
	if json.Valid(raw) {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("testsupport: unmarshal data: %w", err)
		}
		return out, nil
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal data: %w", err)
	}
	return out, nil
}

// MustLoadRendered loads a JSON golden file holding a rendered descriptor tree.
func MustLoadRendered(t *testing.T, path string) []render.Rendered {
	t.Helper()

	data := MustReadGolden(t, path)
	var out []render.Rendered
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
