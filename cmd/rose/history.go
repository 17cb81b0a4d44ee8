package main

import (
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/cli"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/report"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show how an item changed day by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			item, err := store.GetItem(ctx, id)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("no item with id %d", id), err)
			}

			entries, err := store.GetHistory(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatTitle(item.String()))
			if len(entries) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No days recorded yet"))
				return nil
			}
			fmt.Fprintln(out, report.HistoryTable(entries))

			return nil
		},
	}
}
