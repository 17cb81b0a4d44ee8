package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gilded-rose/internal/classification"
	"github.com/Veraticus/gilded-rose/internal/cli"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/fixture"
	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/Veraticus/gilded-rose/internal/report"
	"github.com/spf13/cobra"
)

func inventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage the stored inventory",
		Example: `  # Load the standard stock
  rose inventory import

  # Add an item; use -- before negative numbers
  rose inventory add "Conjured Mana Cake" 3 6
  rose inventory add -- "Aged Brie" -1 10`,
	}

	cmd.AddCommand(listInventoryCmd(a))
	cmd.AddCommand(addItemCmd(a))
	cmd.AddCommand(removeItemCmd(a))
	cmd.AddCommand(importInventoryCmd(a))
	cmd.AddCommand(exportInventoryCmd(a))

	return cmd
}

func listInventoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every item with its category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			day, err := store.GetCurrentDay(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Inventory on day %d", day)))
			if len(items) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No items yet. Run 'rose inventory import' to load the standard stock."))
				return nil
			}
			fmt.Fprintln(out, report.Table(items, classification.Default()))

			return nil
		},
	}
}

func addItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <sell_in> <quality>",
		Short: "Add an item to the inventory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.TrimSpace(args[0])
			sellIn, err := parseInt("sell_in", args[1])
			if err != nil {
				return err
			}
			quality, err := parseInt("quality", args[2])
			if err != nil {
				return err
			}

			item := model.NewItem(name, sellIn, quality)
			category := classification.Default().Classify(item.Name)
			if err := item.Validate(category); err != nil {
				return common.NewUserError("cannot add item", fmt.Errorf("%w: %v", common.ErrInvalidItem, err))
			}

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.AddItem(ctx, &item); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added item %d: %s (%s)", item.ID, item.String(), category)))
			return nil
		},
	}
}

func removeItemCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item and its history",
		Args:    cobra.ExactArgs(1),
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

			if !yes {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, err := cli.Confirm(ctx, reader, out, fmt.Sprintf("Remove %q and its history?", item.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing removed"))
					return nil
				}
			}

			if err := store.DeleteItem(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed item %d: %s", id, item.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func importInventoryCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the inventory with a YAML fixture",
		Long: `Replace the stored inventory with the items of a YAML fixture.

Without a file the configured simulation.fixture is used, or the shop's
standard stock if none is configured. History is cleared and the day counter
starts again at 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			items, err := a.loadInventory(path)
			if err != nil {
				return common.NewUserError("cannot import inventory", err)
			}

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			existing, err := store.GetItems(ctx)
			if err != nil {
				return err
			}

			if len(existing) > 0 && !yes {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				question := fmt.Sprintf("Replace %d stored item(s) and their history?", len(existing))
				ok, err := cli.Confirm(ctx, reader, out, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Import canceled"))
					return nil
				}
			}

			if err := store.ReplaceItems(ctx, items); err != nil {
				return err
			}

			common.LogInfo("Imported inventory", common.Fields{"items": len(items), "source": path})
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d item(s)", len(items))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace without confirmation")

	return cmd
}

func exportInventoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the stored inventory as a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := a.openStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			items, err := store.GetItems(ctx)
			if err != nil {
				return err
			}

			data, err := fixture.Marshal(items)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
