package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxInputLimit is the largest limit a caller may ask for.
const MaxInputLimit = 50

// SearchInput is the caller-facing argument shape of the search tool.
type SearchInput struct {
	Query          string         `json:"query" jsonschema:"natural language search, e.g. forms that display sales order headers"`
	ArtifactTypes  []ArtifactType `json:"artifact_types,omitempty" jsonschema:"optional artifact types to filter on"`
	IncludeRelated bool           `json:"include_related,omitempty" jsonschema:"include semantically related artifacts for broader context"`
	Limit          *int           `json:"limit,omitempty" jsonschema:"number of results (default 10, max 50)"`
	Threshold      *float64       `json:"threshold,omitempty" jsonschema:"minimum relevance score (0-1) to filter results"`
	Filters        *SearchFilters `json:"filters,omitempty" jsonschema:"exact match filters"`
}

// Validate reports every constraint the input violates.
func (in SearchInput) Validate() error {
	var errs []error

	if in.Query == "" {
		errs = append(errs, errors.New("query is required"))
	}

	if in.ArtifactTypes != nil && len(in.ArtifactTypes) == 0 {
		errs = append(errs, errors.New("artifact_types must not be empty when provided"))
	}
	for _, t := range in.ArtifactTypes {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("artifact_types: unknown artifact type %q (expected one of %s)", t, artifactTypeList()))
		}
	}

	if in.Limit != nil && (*in.Limit < 1 || *in.Limit > MaxInputLimit) {
		errs = append(errs, fmt.Errorf("limit must be between 1 and %d, got %d", MaxInputLimit, *in.Limit))
	}

	if in.Threshold != nil {
		t := *in.Threshold
		if math.IsNaN(t) || t < 0 || t > 1 {
			errs = append(errs, fmt.Errorf("threshold must be between 0 and 1, got %v", t))
		}
	}

	return errors.Join(errs...)
}

// ToRequest validates the input and converts it into a SearchRequest whose
// limit never exceeds hardLimit.
func (in SearchInput) ToRequest(hardLimit int) (SearchRequest, error) {
	if err := in.Validate(); err != nil {
		return SearchRequest{}, err
	}

	req := SearchRequest{
		Query:          in.Query,
		ArtifactTypes:  in.ArtifactTypes,
		IncludeRelated: in.IncludeRelated,
		Threshold:      in.Threshold,
		Filters:        in.Filters,
	}
	if in.Limit != nil {
		limit := min(*in.Limit, hardLimit)
		req.Limit = &limit
	}
	return req, nil
}

func artifactTypeList() string {
	names := make([]string, 0, len(ArtifactTypes))
	for _, t := range ArtifactTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
