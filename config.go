package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default settings.
const (
	defaultBaseURL = "https://adventofcode.com"
	defaultYear    = 2025
	defaultUA      = "aoc-leaderboard/1.0"
	defaultTimeout = 30
)

// Local config files, relative to the config directory.
const (
	teamNameFile    = "aoc-team-name.txt"
	leaderboardFile = "aoc-leaderboard.txt"
	cookieFile      = "aoc-cookie.txt"
)

// appSettings holds the optional tool settings.
type appSettings struct {
	BaseURL        string `json:"base_url"`
	Year           int    `json:"year"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func defaultSettings() appSettings {
	return appSettings{
		BaseURL:        defaultBaseURL,
		Year:           defaultYear,
		UserAgent:      defaultUA,
		TimeoutSeconds: defaultTimeout,
	}
}

func (s appSettings) timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// loadSettings loads settings from path (if any) and applies environment overrides.
func loadSettings(path string) (appSettings, error) {
	cfg := defaultSettings()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return appSettings{}, fmt.Errorf("stat settings: %w", err)
			}
		} else {
			k := koanf.New(".")
			if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
				return appSettings{}, fmt.Errorf("load settings: %w", err)
			}
			if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
				return appSettings{}, fmt.Errorf("unmarshal settings: %w", err)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("AOC_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("AOC_YEAR")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return appSettings{}, fmt.Errorf("invalid AOC_YEAR %q: %w", v, err)
		}
		cfg.Year = year
	}

	return cfg.normalized()
}

func (s appSettings) normalized() (appSettings, error) {
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.BaseURL == "" {
		s.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(s.UserAgent) == "" {
		s.UserAgent = defaultUA
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = defaultTimeout
	}
	if s.Year <= 0 {
		return appSettings{}, fmt.Errorf("year must be > 0, got %d", s.Year)
	}
	return s, nil
}

// localConfig holds the three values kept in the config directory.
type localConfig struct {
	TeamName      string
	LeaderboardID string
	SessionCookie string
}

// configValue describes one file-backed value and how to ask for it.
type configValue struct {
	file      string
	warning   string
	hints     []string
	prompt    string
	normalize func(string) string
}

var (
	teamNameValue = configValue{
		file:      teamNameFile,
		warning:   "No team name file provided.",
		prompt:    "Enter your Advent of Code team name: ",
		normalize: strings.TrimSpace,
	}
	leaderboardValue = configValue{
		file:      leaderboardFile,
		warning:   "No leaderboard id provided",
		prompt:    "Enter the leaderboard id: ",
		normalize: normalizeLeaderboardID,
	}
	cookieValue = configValue{
		file:    cookieFile,
		warning: "No session cookie provided. The request may fail if authentication is required.",
		hints: []string{
			"To get your session cookie:",
			"1. Log into adventofcode.com",
			"2. Open browser developer tools (F12)",
			"3. Go to Application/Storage > Cookies",
			"4. Copy the value of the 'session' cookie",
		},
		prompt:    "Enter your Advent of Code session cookie (or press Enter to skip): ",
		normalize: normalizeSessionCookie,
	}
)

// configStore reads and persists local values, prompting when one is missing.
type configStore struct {
	dir string
	in  *bufio.Scanner
	out io.Writer
	log *logger
}

func newConfigStore(dir string, in io.Reader, out io.Writer, log *logger) *configStore {
	return &configStore{dir: dir, in: bufio.NewScanner(in), out: out, log: log}
}

// load ensures all three values. The cookie may come back empty.
func (s *configStore) load() (localConfig, error) {
	var cfg localConfig
	var err error
	if cfg.TeamName, err = s.ensureValue(teamNameValue); err != nil {
		return localConfig{}, err
	}
	if cfg.LeaderboardID, err = s.ensureValue(leaderboardValue); err != nil {
		return localConfig{}, err
	}
	if cfg.SessionCookie, err = s.ensureValue(cookieValue); err != nil {
		return localConfig{}, err
	}
	return cfg, nil
}

// ensureValue returns the value stored in v.file, prompting for it and
// writing it back when the file is missing or blank. After a nil error the
// file holds the returned value.
func (s *configStore) ensureValue(v configValue) (string, error) {
	path := filepath.Join(s.dir, v.file)
	stored, err := readValue(path)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}

	s.log.warn(v.warning)
	for _, h := range v.hints {
		_, _ = fmt.Fprintln(s.out, "\t"+h)
	}
	_, _ = fmt.Fprint(s.out, v.prompt)

	typed, err := s.readLine()
	if err != nil {
		return "", err
	}
	if v.normalize != nil {
		typed = v.normalize(typed)
	}
	if err := writeValue(path, typed); err != nil {
		return "", err
	}
	return typed, nil
}

func (s *configStore) readLine() (string, error) {
	if s.in.Scan() {
		return s.in.Text(), nil
	}
	if err := s.in.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	// EOF counts as an empty answer.
	_, _ = fmt.Fprintln(s.out)
	return "", nil
}

// readValue returns the trimmed content of path, or "" if it does not exist.
func readValue(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return strings.TrimSpace(string(b)), nil
}

// writeValue replaces path with value.
func writeValue(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// normalizeLeaderboardID drops the invite-code suffix: "123456-abcdef" -> "123456".
func normalizeLeaderboardID(raw string) string {
	id, _, _ := strings.Cut(strings.TrimSpace(raw), "-")
	return id
}

var reHeaderCookie = regexp.MustCompile(`(?is)^\s*cookie\s*:\s*(.*?)\s*$`)

// normalizeSessionCookie extracts the session value from a pasted cookie,
// a "Cookie:" header line or a bare value.
func normalizeSessionCookie(raw string) string {
	trim := func(s string) string { return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"'`)) }

	text := trim(raw)
	if m := reHeaderCookie.FindStringSubmatch(text); len(m) == 2 {
		text = trim(m[1])
	}
	for _, part := range strings.Split(text, ";") {
		name, val, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(name), "session") {
			return trim(val)
		}
	}
	return text
}
