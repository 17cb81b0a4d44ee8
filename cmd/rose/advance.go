package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/classification"
	"github.com/Veraticus/gilded-rose/internal/cli"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/engine"
	"github.com/Veraticus/gilded-rose/internal/report"
	"github.com/spf13/cobra"
)

func advanceCmd(a *app) *cobra.Command {
	var (
		days       int
		checkpoint bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Age the stored inventory",
		Long: `Advance the stored inventory by one or more days.

Every completed day is saved along with a history row per item, so an
interrupted run keeps the days it finished.`,
		Example: `  # Close the shop for the night
  rose advance

  # A full week, with a checkpoint first
  rose advance --days 7 --checkpoint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return common.NewUserError(fmt.Sprintf("--days must be at least 1, got %d", days), nil)
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			items, err := store.GetItems(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return common.NewUserError("inventory is empty, add items or run 'rose inventory import' first", nil)
			}

			if checkpoint {
				manager, err := store.NewCheckpointManager()
				if err != nil {
					return fmt.Errorf("failed to create checkpoint manager: %w", err)
				}
				info, err := manager.AutoCheckpoint(ctx, "advance")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatInfo("Created checkpoint "+info.ID))
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			handler := a.interrupts(cmd.ErrOrStderr())
			ctx = handler.HandleInterrupts(ctx, true)

			var progress *cli.Progress
			if days > 1 && !quiet {
				progress = cli.NewProgress(cmd.ErrOrStderr(), days, "Advancing")
			}

			startDay, err := store.GetCurrentDay(ctx)
			if err != nil {
				return err
			}
			currentDay := startDay

			err = engine.Default().Simulate(ctx, items, days, func(s engine.Snapshot) error {
				if s.Day == 0 {
					return nil
				}
				// A computed day is always written, even if an interrupt
				// arrives while saving it.
				saved, err := store.SaveDay(context.WithoutCancel(ctx), s.Items)
				if err != nil {
					return err
				}
				currentDay = saved
				if a.onDaySaved != nil {
					a.onDaySaved(saved)
				}
				if progress != nil {
					progress.Step()
				}
				return nil
			})
			if progress != nil && err == nil {
				progress.Done()
			}

			if err != nil {
				if errors.Is(err, context.Canceled) && handler.WasInterrupted() {
					common.LogInfo("Advance interrupted", common.Fields{"day": currentDay})
					return nil
				}
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Advanced %d day(s), now at day %d", currentDay-startDay, currentDay)))
			fmt.Fprintln(out, report.Table(items, classification.Default()))

			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 1, "number of days to advance")
	cmd.Flags().BoolVar(&checkpoint, "checkpoint", false, "create an automatic checkpoint before advancing")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}
