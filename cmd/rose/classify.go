package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gilded-rose/internal/classification"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>",
		Short: "Print the category an item name falls into",
		Example: `  rose classify "Backstage passes to a TAFKAL80ETC concert"
  rose classify Aged Brie`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), classification.Default().Classify(name))
			return err
		},
	}
}
