// Package instructions holds the static guidance text served to MCP clients:
// server instructions, the search tool description, the tool documentation
// resource and the Golden Path workflow prompt.
package instructions

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

// DefaultTask is interpolated into the Golden Path prompt when no task is given.
const DefaultTask = "[User development task]"

var (
	//go:embed server_instructions.md.tmpl
	serverInstructionsSource string

	//go:embed golden_path.md.tmpl
	goldenPathSource string

	//go:embed tool_description.md
	toolDescription string

	//go:embed search_tool_doc.md
	searchToolDoc string
)

var (
	serverTemplate     = template.Must(template.New("server-instructions").Parse(serverInstructionsSource))
	goldenPathTemplate = template.Must(template.New("golden-path").Parse(goldenPathSource))
)

// ServerParams feeds the server instructions template.
type ServerParams struct {
	ToolName        string
	LocalAssetsPath string
	DefaultLimit    int
	HardLimit       int
}

// Server renders the instructions advertised by the MCP server at initialization.
func Server(params ServerParams) (string, error) {
	data := struct {
		ServerParams
		ArtifactTypes string
	}{
		ServerParams:  params,
		ArtifactTypes: quotedArtifactTypes(),
	}

	var buf bytes.Buffer
	if err := serverTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render server instructions: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ToolDescription returns the long description of the search tool.
func ToolDescription() string {
	return strings.TrimSpace(toolDescription)
}

// SearchToolDoc returns the markdown reference document for the search tool.
func SearchToolDoc() string {
	return searchToolDoc
}

// GoldenPath renders the Golden Path workflow prompt for a development task.
func GoldenPath(toolName string, task string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		task = DefaultTask
	}

	data := struct {
		ToolName string
		Task     string
	}{toolName, task}

	var buf bytes.Buffer
	if err := goldenPathTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render golden path prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func quotedArtifactTypes() string {
	quoted := make([]string, 0, len(models.ArtifactTypes))
	for _, t := range models.ArtifactTypes {
		quoted = append(quoted, fmt.Sprintf("%q", string(t)))
	}
	return strings.Join(quoted, ", ")
}
