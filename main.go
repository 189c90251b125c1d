package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/pretty"
)

// Command names.
const (
	cmdShow = "show"
	cmdHelp = "help"
)

// errNoSessionCookie indicates no session cookie is available after loading config.
var errNoSessionCookie = errors.New("no session cookie")

const authHint = "Authentication required. Please provide a valid session cookie."

// app carries the process streams so runs can be driven from tests.
type app struct {
	log *logger
	in  io.Reader
	out io.Writer
	loc *time.Location
	now func() time.Time
}

func main() {
	_ = godotenv.Load()
	a := &app{
		log: newLogger(os.Stdout),
		in:  os.Stdin,
		out: os.Stdout,
		loc: time.Local,
		now: time.Now,
	}
	if err := run(context.Background(), a, os.Args[1:]); err != nil {
		if !errors.Is(err, errNoSessionCookie) {
			a.log.err(err.Error())
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") && !isHelpFlag(args[0]) {
		return runShow(ctx, a, args)
	}

	switch args[0] {
	case cmdHelp, "-h", "--help":
		printUsage(a.out)
		return nil
	case cmdShow:
		return runShow(ctx, a, args[1:])
	default:
		printUsage(a.out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func isHelpFlag(s string) bool {
	return s == "-h" || s == "--help"
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "aoc-leaderboard: Advent of Code private leaderboard viewer")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  aoc-leaderboard [show] [--dir DIR] [--config PATH] [--year N] [--base-url URL] [--json]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Options:")
	_, _ = fmt.Fprintln(w, "  --dir       Directory holding aoc-team-name.txt, aoc-leaderboard.txt, aoc-cookie.txt (default: current directory)")
	_, _ = fmt.Fprintln(w, "  --config    Optional settings JSON (base_url, year, user_agent, timeout_seconds)")
	_, _ = fmt.Fprintln(w, "  --year      Event year (default: 2025)")
	_, _ = fmt.Fprintln(w, "  --base-url  Website base URL (default: https://adventofcode.com)")
	_, _ = fmt.Fprintln(w, "  --json      Print the leaderboard document instead of the table")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Environment:")
	_, _ = fmt.Fprintln(w, "  AOC_YEAR      Event year")
	_, _ = fmt.Fprintln(w, "  AOC_BASE_URL  Website base URL")
	_, _ = fmt.Fprintln(w, "  NO_COLOR      Disable colored output")
}

func runShow(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet(cmdShow, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		dir        string
		configPath string
		year       int
		baseURL    string
		rawJSON    bool
	)
	fs.StringVar(&dir, "dir", "", "config directory (default: current directory)")
	fs.StringVar(&configPath, "config", "", "settings JSON path")
	fs.IntVar(&year, "year", 0, "event year")
	fs.StringVar(&baseURL, "base-url", "", "website base URL")
	fs.BoolVar(&rawJSON, "json", false, "print the leaderboard document")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(a.out)
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	settings, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if year != 0 {
		settings.Year = year
	}
	if baseURL != "" {
		settings.BaseURL = baseURL
	}
	if settings, err = settings.normalized(); err != nil {
		return err
	}

	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getwd: %w", err)
		}
	}

	cfg, err := newConfigStore(dir, a.in, a.out, a.log).load()
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.SessionCookie) == "" {
		a.log.warn("No session cookie provided.")
		return errNoSessionCookie
	}

	client, err := newAPIClient(settings, cfg.SessionCookie)
	if err != nil {
		return err
	}

	if rawJSON {
		b, err := client.fetchLeaderboardJSON(ctx, settings.Year, cfg.LeaderboardID)
		if err != nil {
			reportFetchError(a.out, err)
			return nil
		}
		_, err = a.out.Write(pretty.Pretty(b))
		return err
	}

	lb, err := client.fetchLeaderboard(ctx, settings.Year, cfg.LeaderboardID)
	if err == nil {
		err = newRenderer(a.out, a.loc).render(lb, cfg.TeamName, a.now())
	}
	if err != nil {
		reportFetchError(a.out, err)
	}
	return nil
}

// reportFetchError prints a fetch or render failure. The run still ends normally.
func reportFetchError(w io.Writer, err error) {
	var se *statusError
	if errors.As(err, &se) {
		_, _ = fmt.Fprintf(w, "HTTP Error: %d - %s\n", se.StatusCode, se.Reason)
		if se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusBadRequest {
			_, _ = fmt.Fprintln(w, authHint)
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)
}
