package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"foodgram-backend/pkg/container"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the foodgram database",
	Long: `Imports ingredients and tags from JSON files.

Ingredients are only loaded into an empty table. Tags are upserted by slug,
so running the tags import again updates names and colors in place.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(ingredientsCmd)
	rootCmd.AddCommand(tagsCmd)
}

// withContainer builds the application container for the duration of fn.
func withContainer(fn func(c *container.Container) error) error {
	c, err := container.NewContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	return fn(c)
}
