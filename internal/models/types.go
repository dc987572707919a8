package models

// ArtifactType is a kind of F&O metadata artifact known to the search index.
type ArtifactType string

const (
	ArtifactTable      ArtifactType = "Table"
	ArtifactForm       ArtifactType = "Form"
	ArtifactClass      ArtifactType = "Class"
	ArtifactEDT        ArtifactType = "EDT"
	ArtifactEnum       ArtifactType = "Enum"
	ArtifactDataEntity ArtifactType = "DataEntity"
	ArtifactView       ArtifactType = "View"
	ArtifactQuery      ArtifactType = "Query"
)

// ArtifactTypes lists every accepted artifact type in display order.
var ArtifactTypes = []ArtifactType{
	ArtifactTable,
	ArtifactForm,
	ArtifactClass,
	ArtifactEDT,
	ArtifactEnum,
	ArtifactDataEntity,
	ArtifactView,
	ArtifactQuery,
}

// Valid reports whether t is one of ArtifactTypes.
func (t ArtifactType) Valid() bool {
	for _, known := range ArtifactTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SearchFilters holds exact-match constraints supplied by the caller.
type SearchFilters struct {
	FoName string `json:"foName,omitempty" jsonschema:"exact match filter for a specific F&O artifact name (e.g. CustTable, SalesTable)"`
}

// SearchRequest is the normalized input of a single search call.
// Nil Limit/Threshold mean "not supplied by the caller".
type SearchRequest struct {
	Query          string
	ArtifactTypes  []ArtifactType
	IncludeRelated bool
	Limit          *int
	Threshold      *float64
	Filters        *SearchFilters
}

// ArtifactRecord is one search hit returned by the remote service.
// FullLocalPath is never sent by the service; it is derived locally.
type ArtifactRecord struct {
	FoName         string         `json:"foName"`
	ArtifactType   string         `json:"artifactType"`
	Description    string         `json:"description,omitempty"`
	RelevanceScore *float64       `json:"relevanceScore,omitempty"`
	FilePath       string         `json:"filePath,omitempty"`
	FullLocalPath  string         `json:"fullLocalPath,omitempty"`
	FoURL          string         `json:"foUrl,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// SearchResult is returned to callers of a successful search.
// Related is never populated: the search service does not return related artifacts.
type SearchResult struct {
	Results           []ArtifactRecord `json:"results"`
	Related           []ArtifactRecord `json:"related,omitempty"`
	UsageInstructions string           `json:"usage_instructions,omitempty"`
	LocalAssetsPath   string           `json:"localAssetsPath"`
	Raw               any              `json:"raw,omitempty"`
}

// LocalAssetsNotConfigured is reported in place of the local assets root when none is set.
const LocalAssetsNotConfigured = "Not configured"
