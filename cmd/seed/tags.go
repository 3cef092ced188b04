package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/pkg/container"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Import tags from a JSON file",
	Long: `Reads [{"name": "...", "color": "#RRGGBB", "slug": "..."}] and upserts by slug.
A missing slug is generated from the name.`,
	RunE: runTags,
}

var tagsFile string

func init() {
	tagsCmd.Flags().StringVar(&tagsFile, "file", "data/tags.json", "Path to the tags JSON file")
}

func runTags(cmd *cobra.Command, args []string) error {
	var tags []tag.Tag
	if err := readJSON(tagsFile, &tags); err != nil {
		return err
	}

	return withContainer(func(c *container.Container) error {
		n, err := c.TagService.Import(cmd.Context(), tags)
		if err != nil {
			return fmt.Errorf("failed to import tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Upserted %d tags\n", n)
		return nil
	})
}
