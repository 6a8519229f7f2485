package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a layout document holds no content.
var ErrEmptyDocument = errors.New("layout: document is empty")

type document struct {
	Layout []*Node `json:"layout" yaml:"layout"`
}

// Parse decodes a JSON or YAML layout document. The document may either be a
// bare list of nodes or an object with a `layout` key.
func Parse(data []byte, source string) ([]*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("layout: parse %s: %w", source, ErrEmptyDocument)
	}

	nodes, jsonErr := decodeJSON(data)
	if jsonErr != nil {
		var yamlErr error
		nodes, yamlErr = decodeYAML(data)
		if yamlErr != nil {
			return nil, fmt.Errorf("layout: parse %s: invalid JSON or YAML: %w", source, errors.Join(jsonErr, yamlErr))
		}
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("layout: parse %s: %w", source, ErrEmptyDocument)
	}
	if err := validateTree(nodes, "layout"); err != nil {
		return nil, fmt.Errorf("layout: parse %s: %w", source, err)
	}
	return nodes, nil
}

// LoadFS reads and parses a layout document from fsys.
func LoadFS(fsys fs.FS, path string) ([]*Node, error) {
	if fsys == nil {
		return nil, errors.New("layout: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads and parses a layout document from disk.
func LoadFile(path string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Parse(data, path)
}

func decodeJSON(data []byte) ([]*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var nodes []*Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, err
		}
		return nodes, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Layout, nil
}

func decodeYAML(data []byte) ([]*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	body := root.Content[0]
	if body.Kind == yaml.SequenceNode {
		var nodes []*Node
		if err := body.Decode(&nodes); err != nil {
			return nil, err
		}
		return nodes, nil
	}
	var doc document
	if err := body.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Layout, nil
}

func validateTree(nodes []*Node, path string) error {
	for idx, node := range nodes {
		location := path + "[" + strconv.Itoa(idx) + "]"
		if node == nil {
			return fmt.Errorf("%s is null", location)
		}
		if strings.TrimSpace(node.Type) == "" {
			return fmt.Errorf("%s has no type", location)
		}
		switch node.ArrayItemType {
		case "", ArrayItemList, ArrayItemTuple:
		default:
			return fmt.Errorf("%s has unknown arrayItemType %q", location, node.ArrayItemType)
		}
		if err := validateTree(node.Items, location+".items"); err != nil {
			return err
		}
	}
	return nil
}
