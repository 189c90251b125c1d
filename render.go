package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	noStarsYet     = "No stars earned yet"
	noDaysYet      = "No days yet"
	lastStarLayout = "2006-01-02 15:04:05"
	bannerDate     = "02 January 2006"
	bannerPadding  = 4
)

var tableHeader = table.Row{"#", "Name", "Completion Day Level", "Stars", "Local Score", "Last Star Earned"}

// row is one rendered leaderboard line. Rank 0 renders as "-".
type row struct {
	Rank       int
	Name       string
	Days       string
	Stars      int
	LocalScore int
	LastStar   string
	earned     bool
}

// renderer prints leaderboards; loc is used for star timestamps.
type renderer struct {
	out io.Writer
	loc *time.Location
}

func newRenderer(out io.Writer, loc *time.Location) *renderer {
	if loc == nil {
		loc = time.Local
	}
	return &renderer{out: out, loc: loc}
}

// render prints the banner and the ranked table for lb.
func (r *renderer) render(lb *leaderboard, team string, now time.Time) error {
	if _, err := fmt.Fprint(r.out, banner(lb.Event, team, now)); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	rows := rankRows(buildRows(lb, r.loc))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Options.SeparateRows = true
	t.AppendHeader(tableHeader)
	for _, rw := range rows {
		var rank any = "-"
		if rw.Rank > 0 {
			rank = rw.Rank
		}
		t.AppendRow(table.Row{rank, rw.Name, rw.Days, rw.Stars, rw.LocalScore, rw.LastStar})
	}

	if _, err := fmt.Fprintf(r.out, "%s\n\n", t.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// banner returns the title block, framed by "=" lines as wide as the padded title.
func banner(event, team string, now time.Time) string {
	pad := strings.Repeat(" ", bannerPadding)
	msg := fmt.Sprintf("%sAdvent of Code %s - %s Leaderboard - %s%s", pad, event, team, now.Format(bannerDate), pad)
	rule := strings.Repeat("=", utf8.RuneCountInString(msg))
	return fmt.Sprintf("\n%s\n%s\n%s\n\n", rule, msg, rule)
}

func buildRows(lb *leaderboard, loc *time.Location) []row {
	rows := make([]row, 0, len(lb.Members))
	for _, m := range lb.Members {
		rows = append(rows, row{
			Name:       m.Name,
			Days:       formatCompletionDays(m.Days),
			Stars:      m.Stars,
			LocalScore: m.LocalScore,
			LastStar:   formatLastStar(m.LastStarTS, loc),
			earned:     m.LastStarTS != 0,
		})
	}
	return rows
}

// rankRows sorts by local score then stars, both descending, keeping input
// order for ties, and numbers only the rows that have earned a star.
func rankRows(rows []row) []row {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LocalScore != rows[j].LocalScore {
			return rows[i].LocalScore > rows[j].LocalScore
		}
		return rows[i].Stars > rows[j].Stars
	})
	next := 1
	for i := range rows {
		rows[i].Rank = 0
		if rows[i].earned {
			rows[i].Rank = next
			next++
		}
	}
	return rows
}

func formatLastStar(ts int64, loc *time.Location) string {
	if ts == 0 {
		return noStarsYet
	}
	return time.Unix(ts, 0).In(loc).Format(lastStarLayout)
}

// formatCompletionDays renders the per-day star sub-table as plain text.
func formatCompletionDays(days map[int]int) string {
	if len(days) == 0 {
		return noDaysYet
	}

	order := make([]int, 0, len(days))
	for d := range days {
		order = append(order, d)
	}
	sort.Ints(order)

	cells := make([][2]string, 0, len(order)+1)
	cells = append(cells, [2]string{"Day", "Stars"})
	for _, d := range order {
		cells = append(cells, [2]string{fmt.Sprintf("Day %d", d), strings.Repeat("*", days[d])})
	}

	// Header columns get two extra characters of rule.
	var widths [2]int
	for c := range widths {
		widths[c] = utf8.RuneCountInString(cells[0][c]) + 2
		for _, cell := range cells[1:] {
			widths[c] = max(widths[c], utf8.RuneCountInString(cell[c]))
		}
	}

	line := func(a, b string) string {
		return strings.TrimRight(padRight(a, widths[0])+"  "+b, " ")
	}
	lines := make([]string, 0, len(cells)+1)
	lines = append(lines, line(cells[0][0], cells[0][1]))
	lines = append(lines, line(strings.Repeat("-", widths[0]), strings.Repeat("-", widths[1])))
	for _, cell := range cells[1:] {
		lines = append(lines, line(cell[0], cell[1]))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
