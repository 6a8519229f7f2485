package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionKey is the OpenAPI operation extension holding a layout tree.
const ExtensionKey = "x-formlayout"

// ErrOperationNotFound is returned when the requested operation id is absent.
var ErrOperationNotFound = errors.New("layout: operation not found")

// FromOpenAPI reads the layout tree attached to an OpenAPI operation through
// the x-formlayout extension. The extension holds an already built layout;
// nothing is derived from the operation schemas.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) ([]*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return nil, errors.New("layout: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("layout: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	raw, ok := op.Extensions[ExtensionKey]
	if !ok || raw == nil {
		return nil, fmt.Errorf("layout: operation %q has no %s extension", operationID, ExtensionKey)
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("layout: encode %s extension: %w", ExtensionKey, err)
	}
	return Parse(payload, operationID+"#"+ExtensionKey)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}
