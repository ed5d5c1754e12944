package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/livinlefevreloca/timespec/lib/timespec"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Backward       bool
	Start          string
	Timezone       string
	CandidatesFile string
}

// resolveResult is the JSON shape of a successful resolution.
type resolveResult struct {
	Spec      []string `json:"spec"`
	Direction string   `json:"direction"`
	Start     string   `json:"start,omitempty"`
	Timezone  string   `json:"timezone"`
	Resolved  string   `json:"resolved"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve [tokens...]",
		Short: "Resolve a spec to the first matching instant",
		Long: `Resolve a time specification to the first instant that satisfies
every token, searching forward (default) or backward from the start instant.

Tokens may be ISO dates (2024-03-15), time fragments (09:30, ::15), weekday
names (mon..sun), modulus markers (30m, 2h, 15s, 7d), or epoch-second
timestamps.

Example:
  timespec resolve 2024-03-15 09:30 --start 2024-01-01T00:00:00Z
  timespec resolve fri 17:00 --tz Europe/Berlin
  timespec resolve 30m --backward --candidates runs.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Backward, "backward", false, "search backward from the start instant")
	cmd.Flags().StringVar(&opts.Start, "start", "", "reference instant (RFC 3339, default: now)")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "", "IANA timezone (default: configured timezone)")
	cmd.Flags().StringVar(&opts.CandidatesFile, "candidates", "", "file with one RFC 3339 candidate instant per line")

	return cmd
}

func runResolve(opts *ResolveOptions, tokens []string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogger(cfg)

	logger := slog.Default().With("request_id", uuid.NewString())

	resolveOpts, tzName, err := buildOptions(opts, cfg.Resolver.Timezone)
	if err != nil {
		return err
	}

	logger.Debug("resolving spec",
		"tokens", strings.Join(tokens, " "),
		"direction", resolveOpts.Direction,
		"timezone", tzName,
		"candidates", len(resolveOpts.Candidates))

	resolved, err := timespec.Resolve(tokens, resolveOpts)
	if err != nil {
		logger.Error("resolution failed", "error", err)
		return err
	}
	logger.Debug("resolved", "instant", resolved.Format(time.RFC3339))

	if opts.Format == "json" {
		result := resolveResult{
			Spec:      tokens,
			Direction: resolveOpts.Direction.String(),
			Timezone:  tzName,
			Resolved:  resolved.Format(time.RFC3339),
		}
		if !resolveOpts.Start.IsZero() {
			result.Start = resolveOpts.Start.Format(time.RFC3339)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolved.Format(time.RFC3339))
	return nil
}

// buildOptions translates command flags into resolver options. The returned
// timezone name is the effective one after flag/config precedence.
func buildOptions(opts *ResolveOptions, defaultTZ string) (timespec.Options, string, error) {
	tzName := defaultTZ
	if opts.Timezone != "" {
		tzName = opts.Timezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return timespec.Options{}, "", fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}

	resolveOpts := timespec.Options{Location: loc}
	if opts.Backward {
		resolveOpts.Direction = timespec.Backward
	}

	if opts.Start != "" {
		start, err := time.Parse(time.RFC3339, opts.Start)
		if err != nil {
			return timespec.Options{}, "", fmt.Errorf("invalid --start instant %q: %w", opts.Start, err)
		}
		resolveOpts.Start = start
	}

	if opts.CandidatesFile != "" {
		candidates, err := readCandidates(opts.CandidatesFile)
		if err != nil {
			return timespec.Options{}, "", err
		}
		resolveOpts.Candidates = candidates
	}

	return resolveOpts, tzName, nil
}

// readCandidates reads one RFC 3339 instant per line, skipping blank lines.
func readCandidates(path string) ([]time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidates file: %w", err)
	}
	defer f.Close()

	// Non-nil even when the file is empty, so the resolver sees an
	// explicit (and invalid) empty list rather than generative mode.
	candidates := []time.Time{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, fmt.Errorf("candidates file line %d: invalid instant %q: %w", line, text, err)
		}
		candidates = append(candidates, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	return candidates, nil
}
