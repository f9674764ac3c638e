package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/ryanuber/columnize"

	"logviewer/internal/app/logbook"
	"logviewer/internal/app/ui/components"
)

const (
	defaultWidth = 120
	minMessage   = 20
	cellGlue     = "  "
	ellipsis     = "…"
)

// Table writes rows as aligned columns. Collapsed messages show their first line cut to the terminal width,
// full messages keep their line breaks and wrap inside the message column
func (r *renderer) Table(w io.Writer, rows []logbook.Row, full bool) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "DATE|TIME|LEVEL|MESSAGE")

	budget := r.messageBudget(rows)

	for _, row := range rows {
		if row.IsHeader() {
			lines = append(lines, row.Date+"|||")
			continue
		}

		text := message(row.Entry.Message, full, budget)

		lines = append(lines, strings.Join([]string{
			"",
			row.Time,
			clean(row.Entry.Level),
			text[0],
		}, "|"))

		for _, more := range text[1:] {
			lines = append(lines, "|||"+more)
		}
	}

	cfg := columnize.DefaultConfig()
	cfg.Glue = cellGlue

	_, err := fmt.Fprintln(w, columnize.Format(lines, cfg))

	return err
}

// messageBudget is the room left for the message column
func (r *renderer) messageBudget(rows []logbook.Row) int {
	dateWidth, levelWidth := len("DATE"), len("LEVEL")

	for _, row := range rows {
		if row.IsHeader() {
			dateWidth = max(dateWidth, ansi.StringWidth(row.Date))
			continue
		}

		levelWidth = max(levelWidth, ansi.StringWidth(clean(row.Entry.Level)))
	}

	used := dateWidth + len("00:00:00") + levelWidth + 3*len(cellGlue)

	return max(minMessage, r.width()-used)
}

func message(text string, full bool, budget int) []string {
	if full {
		return components.Wrap(clean(text), budget)
	}

	first, _, more := strings.Cut(text, "\n")
	first = clean(first)

	if more {
		first += " " + ellipsis
	}

	return []string{ansi.Truncate(first, budget, ellipsis)}
}

// clean drops terminal escape sequences and the column delimiter
func clean(text string) string {
	return strings.ReplaceAll(ansi.Strip(text), "|", "¦")
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}
