package searchapi

import (
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the classified view of a search response body.
// Raw keeps the decoded body, or a parseError diagnostic when the body is not JSON.
type envelope struct {
	Success bool
	HasData bool
	Error   string
	Results []any
	Raw     any
}

// decodeEnvelope always yields an envelope: unreadable or undecodable bodies give
// an empty one whose Raw field describes the parse failure. The error is only the
// read error, so callers can tell a timed out body from a malformed one.
func decodeEnvelope(body io.Reader) (envelope, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return envelope{Raw: map[string]any{"parseError": err.Error()}}, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return envelope{Raw: map[string]any{"parseError": err.Error()}}, nil
	}

	env := envelope{Raw: raw}
	fields, ok := raw.(map[string]any)
	if !ok {
		return env, nil
	}

	env.Success, _ = fields["success"].(bool)
	env.Error, _ = fields["error"].(string)

	switch payload := fields["data"].(type) {
	case nil:
	case bool:
		env.HasData = payload
	case map[string]any:
		env.HasData = true
		env.Results, _ = payload["results"].([]any)
	default:
		env.HasData = true
	}

	return env, nil
}

// invalidFieldsKey holds record fields whose type did not match ArtifactRecord.
const invalidFieldsKey = "invalidFields"

// decodeRecord converts one loosely typed result entry into an ArtifactRecord.
// Entries never get dropped: a field of the wrong type is moved into
// Metadata[invalidFieldsKey] and its name is returned in invalid.
func decodeRecord(item any) (record models.ArtifactRecord, invalid []string) {
	fields, ok := item.(map[string]any)
	if !ok {
		return models.ArtifactRecord{
			Metadata: map[string]any{invalidFieldsKey: map[string]any{"record": item}},
		}, []string{"record"}
	}

	data, err := json.Marshal(fields)
	if err == nil && json.Unmarshal(data, &record) == nil {
		return record, nil
	}
	return salvageRecord(fields)
}

func salvageRecord(fields map[string]any) (models.ArtifactRecord, []string) {
	var record models.ArtifactRecord
	bad := map[string]any{}

	for key, dst := range map[string]*string{
		"foName":        &record.FoName,
		"artifactType":  &record.ArtifactType,
		"description":   &record.Description,
		"filePath":      &record.FilePath,
		"fullLocalPath": &record.FullLocalPath,
		"foUrl":         &record.FoURL,
	} {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		if text, ok := value.(string); ok {
			*dst = text
			continue
		}
		bad[key] = value
	}

	if value, ok := fields["relevanceScore"]; ok && value != nil {
		if score, err := cast.ToFloat64E(value); err == nil {
			record.RelevanceScore = &score
		} else {
			bad["relevanceScore"] = value
		}
	}

	if value, ok := fields["metadata"]; ok && value != nil {
		if metadata, ok := value.(map[string]any); ok {
			record.Metadata = metadata
		} else {
			bad["metadata"] = value
		}
	}

	if len(bad) == 0 {
		return record, nil
	}
	if record.Metadata == nil {
		record.Metadata = map[string]any{}
	}
	record.Metadata[invalidFieldsKey] = bad

	names := make([]string, 0, len(bad))
	for key := range bad {
		names = append(names, key)
	}
	sort.Strings(names)
	return record, names
}
