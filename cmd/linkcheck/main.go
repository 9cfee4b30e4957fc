package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/haukened/linkcheck/internal/link/bootstrap"
	"github.com/haukened/linkcheck/internal/link/common/clock"
	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/config"
	"github.com/haukened/linkcheck/internal/link/domain"
	"github.com/haukened/linkcheck/internal/link/gateways/render"
	"github.com/haukened/linkcheck/internal/link/services/checker"
)

const (
	exitOK     = 0
	exitError  = 1
	exitUnsafe = 2
)

// errUnsafe is returned in strict mode when at least one verdict is unsafe.
var errUnsafe = errors.New("unsafe link detected")

type cliOptions struct {
	json    bool
	strict  bool
	verbose bool
	rules   string
	lists   []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps the result to a process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUnsafe):
		return exitUnsafe
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "linkcheck",
		Short:         "Check links and QR codes against a phishing blacklist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.json, "json", false, "print one JSON verdict per line")
	flags.BoolVar(&opts.strict, "strict", false, "exit with status 2 if any verdict is unsafe")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log rule loading and decisions to stderr")
	flags.StringVar(&opts.rules, "rules", "", "rules file, .yaml .json or .toml (overrides LINK_RULES_FILE)")
	flags.StringSliceVar(&opts.lists, "list", nil, "domain feed file, plain or hosts format (repeatable)")

	root.AddCommand(newCheckCmd(opts), newScanCmd(opts))
	return root
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>...",
		Short: "Check one or more URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildChecker(opts)
			if err != nil {
				return err
			}
			results := make([]render.Result, 0, len(args))
			for _, raw := range args {
				results = append(results, render.Result{Input: raw, Verdict: svc.Check(cmd.Context(), raw)})
			}
			return report(cmd.OutOrStdout(), opts, results)
		},
	}
}

func newScanCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>...",
		Short: "Decode QR codes from image files and check their content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildChecker(opts)
			if err != nil {
				return err
			}
			results := make([]render.Result, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				results = append(results, render.Result{Input: path, Verdict: svc.Scan(cmd.Context(), data)})
			}
			return report(cmd.OutOrStdout(), opts, results)
		},
	}
}

// buildChecker loads LINK_* configuration, applies flag overrides and wires the
// same pipeline the daemon runs.
func buildChecker(opts *cliOptions) (*checker.Checker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if opts.rules != "" {
		cfg.RulesFile = opts.rules
	}
	if len(opts.lists) > 0 {
		cfg.RuleLists = append(cfg.RuleLists, opts.lists...)
	}

	logger := log.NewNoopLogger()
	if opts.verbose {
		if err := log.Configure("dev", "debug"); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		logger = log.GetLogger()
	}

	return bootstrap.NewChecker(cfg, clock.RealClock{}, logger)
}

// report prints results and, in strict mode, signals unsafe verdicts.
func report(w io.Writer, opts *cliOptions, results []render.Result) error {
	if opts.json {
		if err := render.JSON(w, results...); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if len(results) > 1 {
				fmt.Fprintf(w, "%s\n", r.Input)
			}
			if err := render.Text(w, r.Verdict); err != nil {
				return err
			}
		}
	}

	if opts.strict {
		for _, r := range results {
			if r.Status == domain.StatusUnsafe {
				return errUnsafe
			}
		}
	}
	return nil
}
