package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFormatCompletionDays(t *testing.T) {
	tests := []struct {
		name string
		days map[int]int
		want string
	}{
		{name: "nil map", days: nil, want: "No days yet"},
		{name: "empty map", days: map[int]int{}, want: "No days yet"},
		{
			name: "two days",
			days: map[int]int{2: 1, 1: 2},
			want: "Day    Stars\n-----  -------\nDay 1  **\nDay 2  *",
		},
		{
			name: "wide day column",
			days: map[int]int{10: 2},
			want: "Day     Stars\n------  -------\nDay 10  **",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatCompletionDays(tt.days))
		})
	}
}

func TestFormatCompletionDays_NumericOrder(t *testing.T) {
	got := formatCompletionDays(map[int]int{10: 1, 2: 2, 1: 1, 25: 2})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 6)

	var order []string
	for _, l := range lines[2:] {
		order = append(order, strings.Join(strings.Fields(l)[:2], " "))
	}
	require.Equal(t, []string{"Day 1", "Day 2", "Day 10", "Day 25"}, order)
	require.True(t, strings.HasSuffix(lines[3], " **"))
	require.True(t, strings.HasSuffix(lines[4], " *"))
}

func TestFormatLastStar(t *testing.T) {
	require.Equal(t, "No stars earned yet", formatLastStar(0, time.UTC))
	require.Equal(t, "2024-11-30 20:53:20", formatLastStar(1733000000, time.UTC))

	est := time.FixedZone("EST", -5*60*60)
	require.Equal(t, "2024-11-30 15:53:20", formatLastStar(1733000000, est))
}

func TestRankRows(t *testing.T) {
	tests := []struct {
		name      string
		rows      []row
		wantNames []string
		wantRanks []int
	}{
		{
			name: "score then stars, ties keep input order",
			rows: []row{
				{Name: "A", LocalScore: 10, Stars: 2, earned: true},
				{Name: "B", LocalScore: 0, Stars: 0},
				{Name: "C", LocalScore: 10, Stars: 2, earned: true},
				{Name: "D", LocalScore: 10, Stars: 3, earned: true},
				{Name: "E", LocalScore: 5, Stars: 1, earned: true},
			},
			wantNames: []string{"D", "A", "C", "E", "B"},
			wantRanks: []int{1, 2, 3, 4, 0},
		},
		{
			name: "unearned row does not take a rank",
			rows: []row{
				{Name: "Y", LocalScore: 10, Stars: 1, earned: true},
				{Name: "X", LocalScore: 20},
				{Name: "Z", LocalScore: 3, Stars: 1, earned: true},
			},
			wantNames: []string{"X", "Y", "Z"},
			wantRanks: []int{0, 1, 2},
		},
		{
			name:      "nobody has stars",
			rows:      []row{{Name: "P"}, {Name: "Q"}},
			wantNames: []string{"P", "Q"},
			wantRanks: []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankRows(tt.rows)
			var names []string
			var ranks []int
			for _, r := range got {
				names = append(names, r.Name)
				ranks = append(ranks, r.Rank)
			}
			require.Equal(t, tt.wantNames, names)
			require.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestBanner(t *testing.T) {
	now := time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC)
	got := banner("2025", "Gophers", now)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 6)
	require.Equal(t, "", lines[0])
	require.Equal(t, "    Advent of Code 2025 - Gophers Leaderboard - 05 December 2025    ", lines[2])
	require.Equal(t, strings.Repeat("=", len(lines[2])), lines[1])
	require.Equal(t, lines[1], lines[3])
	require.Equal(t, "", lines[4])
}

func TestBanner_CountsRunes(t *testing.T) {
	got := banner("2025", "Équipe ☃", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	lines := strings.Split(got, "\n")
	require.Equal(t, utf8.RuneCountInString(lines[2]), len(lines[1]))
}

func TestRenderer_Render(t *testing.T) {
	lb := &leaderboard{
		Event: "2025",
		Members: []member{
			{ID: "2", Name: "Bob", Days: map[int]int{}},
			{ID: "1", Name: "Alice", Stars: 5, LocalScore: 120, LastStarTS: 1733000000, Days: map[int]int{1: 2, 2: 1}},
		},
	}

	var buf bytes.Buffer
	now := time.Date(2025, time.December, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, newRenderer(&buf, time.UTC).render(lb, "Gophers", now))

	out := buf.String()
	require.Contains(t, out, "Advent of Code 2025 - Gophers Leaderboard - 02 December 2025")
	for _, h := range []string{"#", "Name", "Completion Day Level", "Stars", "Local Score", "Last Star Earned"} {
		require.Contains(t, out, h)
	}
	require.Contains(t, out, "│ 1 │ Alice")
	require.Contains(t, out, "│ - │ Bob")
	require.Contains(t, out, "Day 1  **")
	require.Contains(t, out, "Day 2  *")
	require.Contains(t, out, "No days yet")
	require.Contains(t, out, "No stars earned yet")
	require.Contains(t, out, "2024-11-30 20:53:20")
	require.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
	require.True(t, strings.HasSuffix(out, "\n\n"))
}
