// Package report renders summary reports for chat, terminal and PDF output.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/frahmantamala/expense-bot/internal/summary"
)

const (
	Title          = "Expense Summary"
	CategoryHeader = "Tipo de Gasto"
	AmountHeader   = "Monto"
)

// FormatAmount renders v as whole currency units with dot thousand separators,
// e.g. 1234567.9 -> "$1.234.567". Fractions are truncated toward zero.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	t := math.Trunc(v)
	if math.Abs(t) < maxExactInt {
		return "$" + humanize.FormatInteger("#.###,", int(t))
	}
	return "$" + groupThousands(t)
}

// maxExactInt is 2^63; int conversion of anything at or above it overflows.
const maxExactInt = 1 << 63

func groupThousands(t float64) string {
	digits := strconv.FormatFloat(math.Abs(t), 'f', 0, 64)

	var b strings.Builder
	if t < 0 {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Row is a single category line of a rendered window.
type Row struct {
	Category string
	Amount   float64
}

// Rows orders a window's sums: catalog entries first in catalog order, other
// keys alphabetically, total last.
func Rows(sums summary.Sums, order []string) []Row {
	rows := make([]Row, 0, len(sums))
	seen := make(map[string]bool, len(sums))

	for _, name := range order {
		if v, ok := sums[name]; ok && name != summary.TotalKey {
			rows = append(rows, Row{Category: name, Amount: v})
			seen[name] = true
		}
	}

	var rest []string
	for k := range sums {
		if !seen[k] && k != summary.TotalKey {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		rows = append(rows, Row{Category: k, Amount: sums[k]})
	}

	return append(rows, Row{Category: summary.TotalKey, Amount: sums.Total()})
}

// RenderText builds the chat message for a report. Each window is a bold
// label followed by a pipe-separated table of category and amount.
func RenderText(r summary.Report, order []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", Title)
	for _, w := range r.Windows {
		fmt.Fprintf(&b, "*%s*\n", w.Name.Label())
		b.WriteString(CategoryHeader + " | " + AmountHeader + "\n")
		b.WriteString("-------------|------\n")
		for _, row := range Rows(w.Sums, order) {
			fmt.Fprintf(&b, "%-15s | %7s\n", row.Category, FormatAmount(row.Amount))
		}
		b.WriteString("\n")
	}
	return b.String()
}
