package main

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/mcpadapter"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
	"github.com/xplusplusai/fo-semantic-mcp/internal/setup/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search F&O artifacts and print the structured result as JSON",
		Example: `  fo-search search "forms that display sales order headers" --type Form --limit 5
  fo-search search "customer credit limit" --type Table --type EDT --threshold 0.6`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	flags := cmd.Flags()
	flags.StringSliceP("type", "t", nil, "artifact type filter, repeatable ("+artifactTypeNames()+")")
	flags.IntP("limit", "l", 0, "number of results (1-50)")
	flags.Float64("threshold", 0, "minimum relevance score (0-1)")
	flags.String("name", "", "exact F&O object name filter")
	flags.Bool("related", false, "include related artifacts")
	flags.Bool("text", false, "print the human readable summary instead of JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	input := models.SearchInput{Query: strings.Join(args, " ")}

	types, err := flags.GetStringSlice("type")
	if err != nil {
		return err
	}
	for _, t := range types {
		input.ArtifactTypes = append(input.ArtifactTypes, models.ArtifactType(t))
	}
	if flags.Changed("limit") {
		limit, err := flags.GetInt("limit")
		if err != nil {
			return err
		}
		input.Limit = &limit
	}
	if flags.Changed("threshold") {
		threshold, err := flags.GetFloat64("threshold")
		if err != nil {
			return err
		}
		input.Threshold = &threshold
	}
	if name, _ := flags.GetString("name"); name != "" {
		input.Filters = &models.SearchFilters{FoName: name}
	}
	input.IncludeRelated, _ = flags.GetBool("related")

	level, _ := cmd.Flags().GetString("log-level")
	log := logger.NewWithWriter(level, cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	req, err := input.ToRequest(cfg.HardLimit)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	client := searchapi.NewClient(cfg, &log)
	result, err := client.Search(cmd.Context(), req)
	if err != nil {
		return err
	}
	if result == nil {
		return errors.New("search returned no result")
	}

	if text, _ := flags.GetBool("text"); text {
		summary, err := mcpadapter.FormatSuccess(*result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func artifactTypeNames() string {
	names := make([]string, 0, len(models.ArtifactTypes))
	for _, t := range models.ArtifactTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
