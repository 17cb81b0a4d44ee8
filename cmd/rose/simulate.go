package main

import (
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/engine"
	"github.com/Veraticus/gilded-rose/internal/report"
	"github.com/spf13/cobra"
)

func simulateCmd(a *app) *cobra.Command {
	var (
		days        int
		fixturePath string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print a day-by-day report for an inventory",
		Long: `Run an inventory forward and print its state at the end of every day.

The inventory comes from --fixture, the simulation.fixture setting, or the
shop's standard stock. Nothing is written to the database.`,
		Example: `  # Two days of the standard stock
  rose simulate

  # Thirty days of a custom inventory
  rose simulate --days 30 --fixture shop.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.Simulation.Days
			}
			if days < 0 {
				return common.NewUserError(fmt.Sprintf("--days must not be negative, got %d", days), engine.ErrNegativeDays)
			}

			items, err := a.loadInventory(fixturePath)
			if err != nil {
				return err
			}

			return engine.Default().Simulate(cmd.Context(), items, days, report.DayWriter(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 0, "number of days to simulate (default: simulation.days)")
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "YAML inventory to simulate")

	return cmd
}
