// Package main implements aoc-leaderboard, a CLI tool that prints an
// Advent of Code private leaderboard as a ranked table.
//
// # Usage
//
//	aoc-leaderboard [show] [--dir DIR] [--config PATH] [--year N] [--base-url URL] [--json]
//
// # Configuration
//
// The team name, leaderboard id and session cookie are read from
// aoc-team-name.txt, aoc-leaderboard.txt and aoc-cookie.txt in the current
// directory (or --dir). Missing values are prompted for and written back.
// Optional settings are read from the JSON file given with --config and from
// AOC_YEAR / AOC_BASE_URL, which may also be set in a .env file.
package main
