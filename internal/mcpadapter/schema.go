package mcpadapter

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

// searchInputSchema infers the tool input schema from models.SearchInput and
// tightens it with the constraints the struct tags cannot express.
func searchInputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[models.SearchInput](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer search input schema: %w", err)
	}

	query, err := property(schema, "query")
	if err != nil {
		return nil, err
	}
	query.MinLength = ptr(1)

	types, err := property(schema, "artifact_types")
	if err != nil {
		return nil, err
	}
	types.MinItems = ptr(1)
	if types.Items == nil {
		types.Items = &jsonschema.Schema{Type: "string"}
	}
	types.Items.Enum = make([]any, 0, len(models.ArtifactTypes))
	for _, t := range models.ArtifactTypes {
		types.Items.Enum = append(types.Items.Enum, string(t))
	}

	limit, err := property(schema, "limit")
	if err != nil {
		return nil, err
	}
	limit.Minimum = ptr(1.0)
	limit.Maximum = ptr(float64(models.MaxInputLimit))

	threshold, err := property(schema, "threshold")
	if err != nil {
		return nil, err
	}
	threshold.Minimum = ptr(0.0)
	threshold.Maximum = ptr(1.0)

	return schema, nil
}

func property(schema *jsonschema.Schema, name string) (*jsonschema.Schema, error) {
	prop, ok := schema.Properties[name]
	if !ok || prop == nil {
		return nil, fmt.Errorf("search input schema has no %q property", name)
	}
	return prop, nil
}

func ptr[T any](v T) *T {
	return &v
}
