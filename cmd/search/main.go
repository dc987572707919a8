package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/xplusplusai/fo-semantic-mcp/internal/mcpadapter"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func renderError(err error) string {
	if apiErr, ok := searchapi.AsSearchAPIError(err); ok {
		return mcpadapter.FormatSearchError(apiErr)
	}
	return err.Error()
}
