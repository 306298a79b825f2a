package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio-console/console/config"
	"github.com/portfolio-console/console/internal/portfolio/domain"
	"github.com/portfolio-console/console/internal/portfolio/gateway"
	"github.com/portfolio-console/console/internal/portfolio/store"
	"github.com/portfolio-console/console/internal/printer"
)

var (
	version string
	commit  string
	date    string

	apiURL       string
	timeout      time.Duration
	outputFormat string
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio console - inspect and manage portfolio projects and experience",
	Long: `portfolio talks to the same portfolio REST API as the web console.

It lists projects and work experience with the console's search rules,
prints the statistics panel and deletes records after confirmation.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	// errors are printed by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Portfolio API base URL (defaults to PORTFOLIO_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (defaults to HTTP_TIMEOUT)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format: table, json or yaml")
}

func checkOutputFormat() error {
	switch outputFormat {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", outputFormat),
			[]string{"Valid formats: table, json, yaml"},
		)
	}
}

// openStore builds a store backed by the portfolio API. The returned base
// URL is used in error suggestions.
func openStore() (*store.Store, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{"Check PORTFOLIO_API_URL and the other settings in your environment or .env file"},
		)
	}

	base := cfg.Portfolio.APIURL
	if apiURL != "" {
		base = apiURL
	}
	d := cfg.Portfolio.HTTPTimeout
	if timeout > 0 {
		d = timeout
	}

	client := gateway.NewClient(base, gateway.WithTimeout(d))
	return store.New(client, store.WithMessageTTL(cfg.Portfolio.MessageTTL)), base, nil
}

// loadCollections loads the store and fails only when one of the needed
// collections could not be fetched.
func loadCollections(cmd *cobra.Command, st *store.Store, base string, needed ...string) error {
	failed := loadErrors(st.Load(cmd.Context()))
	for _, name := range needed {
		if err, ok := failed[name]; ok {
			return printer.Error(
				fmt.Sprintf("could not load %s", name),
				fmt.Sprintf("%s: %v", gateway.MsgLoad, err),
				[]string{fmt.Sprintf("Check that the portfolio API is reachable:\n  curl %s/api/%s/", base, name)},
			)
		}
	}
	return nil
}

// loadErrors indexes the per-collection failures of Store.Load.
func loadErrors(err error) map[string]error {
	failed := make(map[string]error)
	if err == nil {
		return failed
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var le *domain.LoadError
		if errors.As(e, &le) {
			failed[le.Collection] = le.Err
		}
	}
	return failed
}
