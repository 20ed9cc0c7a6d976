package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	BuildFlags
	Database string
	Explain  bool // print the filter before the matches
}

// QueryResult is the JSON payload of the query command.
type QueryResult struct {
	Matches []string `json:"matches"`
	Total   int      `json:"total"`
}

// Text lists the matching ids one per line.
func (r QueryResult) Text() string {
	var b strings.Builder
	for _, id := range r.Matches {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	return b.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <request-file>",
		Short: "Find stored documents matching a request",
		Long: `Build the filter for a request and run it against a document database.

Matching document ids are printed one per line, in id order.

Examples:
  spanfilter query --db ./docs.db request.json
  spanfilter query --db ./docs.db --explain request.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config database)")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "print the filter before the matches")
	opts.BuildFlags.register(cmd)

	return cmd
}

func runQuery(opts *QueryOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.settings().Database
	}
	if dbPath == "" {
		return NewExitError(ExitCommandError, "no database: pass --db or set database in config")
	}

	expr, err := buildFromFile(opts.RootOptions, &opts.BuildFlags, path, cmd)
	if err != nil {
		return reportBuildError(formatter, err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.logger().Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ids, err := st.Find(ctx, expr)
	if err != nil {
		if opts.Format == "json" {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "query failed", err)
	}

	opts.logger().Info("query complete", "db", dbPath, "matches", len(ids))

	if opts.Explain && opts.Format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), filter.Format(expr))
	}
	formatter.VerboseLog("%d document(s) matched", len(ids))
	return formatter.Success(QueryResult{Matches: ids, Total: len(ids)})
}
