package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/livinlefevreloca/timespec/lib/timespec"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Backward bool
	Start    string
	Timezone string
}

// bucketCounts reports how many predicates each bucket received.
type bucketCounts struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`

	Dates    int `json:"dates"`
	Times    int `json:"times"`
	Instants int `json:"instants"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [tokens...]",
		Short: "Classify a spec without resolving it",
		Long: `Classify each token of a time specification and report how many
predicates landed in each of the nine buckets. Exits nonzero when any token
is malformed or violates the search direction.

Example:
  timespec check 2024-03-15 09:30 fri`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Backward, "backward", false, "validate date tokens against a backward search")
	cmd.Flags().StringVar(&opts.Start, "start", "", "reference instant (RFC 3339, default: now)")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "", "IANA timezone (default: configured timezone)")

	return cmd
}

func runCheck(opts *CheckOptions, tokens []string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.setupLogger(cfg)

	tzName := cfg.Resolver.Timezone
	if opts.Timezone != "" {
		tzName = opts.Timezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}

	classifyOpts := timespec.Options{Location: loc}
	if opts.Backward {
		classifyOpts.Direction = timespec.Backward
	}
	if opts.Start != "" {
		start, err := time.Parse(time.RFC3339, opts.Start)
		if err != nil {
			return fmt.Errorf("invalid --start instant %q: %w", opts.Start, err)
		}
		classifyOpts.Start = start
	}

	set, err := timespec.Classify(tokens, classifyOpts)
	if err != nil {
		return err
	}

	counts := bucketCounts{
		Years:    len(set.Years),
		Months:   len(set.Months),
		Days:     len(set.Days),
		Hours:    len(set.Hours),
		Minutes:  len(set.Minutes),
		Seconds:  len(set.Seconds),
		Dates:    len(set.Dates),
		Times:    len(set.Times),
		Instants: len(set.Instants),
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "years:    %d\n", counts.Years)
	fmt.Fprintf(out, "months:   %d\n", counts.Months)
	fmt.Fprintf(out, "days:     %d\n", counts.Days)
	fmt.Fprintf(out, "hours:    %d\n", counts.Hours)
	fmt.Fprintf(out, "minutes:  %d\n", counts.Minutes)
	fmt.Fprintf(out, "seconds:  %d\n", counts.Seconds)
	fmt.Fprintf(out, "dates:    %d\n", counts.Dates)
	fmt.Fprintf(out, "times:    %d\n", counts.Times)
	fmt.Fprintf(out, "instants: %d\n", counts.Instants)
	return nil
}
