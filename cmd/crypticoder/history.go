package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crypticoder-go/pkg/log"

	"github.com/urfave/cli/v2"
)

// timeFormats are tried in order for absolute time specs.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec accepts a duration back from now ("30m", "2d", "1w") or an
// absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	if n := len(spec); n > 1 {
		unit := map[byte]time.Duration{'d': 24 * time.Hour, 'w': 7 * 24 * time.Hour}[spec[n-1]]
		if count, err := strconv.Atoi(spec[:n-1]); err == nil && unit != 0 {
			return now.Add(-time.Duration(count) * unit), nil
		}
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '2d') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}

var historyCommand = &cli.Command{
	Name:      "history",
	Usage:     "List recorded encode and decode operations",
	UsageText: "crypticoder history [-n COUNT] [--since TIME_SPEC [--until TIME_SPEC]] [--pretty]",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of most recent entries `NUMBER`",
			Value:   20,
		},
		&cli.StringFlag{
			Name:    "since",
			Aliases: []string{"s"},
			Usage:   "Only entries after `TIME_SPEC` (e.g., '1h', '2023-10-27T10:00:00Z')",
		},
		&cli.StringFlag{
			Name:    "until",
			Aliases: []string{"u"},
			Usage:   "Only entries before `TIME_SPEC`; requires --since",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since `NUMBER`",
			Value:   1000,
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "One readable line per entry instead of raw JSON",
		},
	},
	Action: historyCmd,
}

func historyCmd(c *cli.Context) error {
	now := time.Now()
	var (
		entries []log.LogEntry
		err     error
	)
	switch {
	case c.IsSet("since"):
		start, perr := parseTimeSpec(c.String("since"), now)
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error parsing --since: %v", perr), 1)
		}
		end := now
		if c.IsSet("until") {
			if end, perr = parseTimeSpec(c.String("until"), now); perr != nil {
				return cli.Exit(fmt.Sprintf("Error parsing --until: %v", perr), 1)
			}
		}
		entries, err = log.GetLogsBetween(start, end, c.Int("limit"))
	case c.IsSet("until"):
		return cli.Exit("Error: --until requires --since.", 1)
	default:
		if c.Int("count") <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		entries, err = log.GetLastNLogs(c.Int("count"))
	}
	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Error: the journal is disabled (--no-journal).", 1)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving history: %v", err), 1)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "No history entries found.")
		return nil
	}
	for _, e := range entries {
		if c.Bool("pretty") {
			fmt.Fprintln(c.App.Writer, prettyEntry(e))
		} else {
			fmt.Fprintln(c.App.Writer, e.LogData)
		}
	}
	return nil
}

func prettyEntry(e log.LogEntry) string {
	var f map[string]any
	if err := json.Unmarshal([]byte(e.LogData), &f); err != nil {
		return e.LogData
	}
	str := func(k string) string {
		if v, ok := f[k]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", str("time"), strings.ToUpper(str("level")), str("message"))
	for _, k := range []string{"action", "mode", "in_bytes", "out_bytes", "output", "input", "error"} {
		if v := str(k); v != "" {
			fmt.Fprintf(&b, " %s=%s", k, v)
		}
	}
	return b.String()
}
