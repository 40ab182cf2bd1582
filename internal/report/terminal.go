package report

import (
	"fmt"
	"io"

	"github.com/frahmantamala/expense-bot/internal/summary"
	"github.com/pterm/pterm"
)

// RenderTerminal writes the report as one boxed table per window.
func RenderTerminal(w io.Writer, r summary.Report, order []string) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n\n", pterm.Bold.Sprint(Title), r.GeneratedAt.Format("2006-01-02 15:04")); err != nil {
		return err
	}

	for _, win := range r.Windows {
		data := pterm.TableData{{CategoryHeader, AmountHeader}}
		for _, row := range Rows(win.Sums, order) {
			data = append(data, []string{row.Category, FormatAmount(row.Amount)})
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("render %s table: %w", win.Name, err)
		}

		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", pterm.Bold.Sprint(win.Name.Label()), table); err != nil {
			return err
		}
	}
	return nil
}
