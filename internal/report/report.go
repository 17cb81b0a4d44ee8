// Package report renders inventories as text.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/gilded-rose/internal/cli"
	"github.com/Veraticus/gilded-rose/internal/engine"
	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WriteDay writes one day of the plain-text day-by-day report:
//
//	-------- day 1 --------
//	name, sellIn, quality
//	Aged Brie, 1, 1
//
// The format is stable; golden files depend on it.
func WriteDay(w io.Writer, snapshot engine.Snapshot) error {
	if _, err := fmt.Fprintf(w, "-------- day %d --------\nname, sellIn, quality\n", snapshot.Day); err != nil {
		return err
	}
	for _, item := range snapshot.Items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// DayWriter returns an observer that writes every simulated day to w.
func DayWriter(w io.Writer) engine.Observer {
	return func(s engine.Snapshot) error {
		return WriteDay(w, s)
	}
}

// Table renders items with their categories as a bordered table.
func Table(items []model.Item, classifier engine.Classifier) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		id := "-"
		if item.ID > 0 {
			id = strconv.FormatInt(item.ID, 10)
		}
		rows = append(rows, []string{
			id,
			item.Name,
			classifier.Classify(item.Name).String(),
			strconv.Itoa(item.SellIn),
			strconv.Itoa(item.Quality),
		})
	}

	return render([]string{"ID", "Name", "Category", "Sell In", "Quality"}, rows)
}

// HistoryTable renders an item's recorded days.
func HistoryTable(entries []model.HistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Day),
			strconv.Itoa(e.SellIn),
			strconv.Itoa(e.Quality),
		})
	}

	return render([]string{"Day", "Sell In", "Quality"}, rows)
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			return cli.TableCellStyle
		}).
		String()
}
