package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spanfilter/internal/builder"
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/span"
)

// BuildFlags are the filter construction flags shared by build and query.
// Empty values fall back to the loaded config.
type BuildFlags struct {
	BasePath    string
	Casing      string
	ReservedKey string
	Normalize   []string
}

func (f *BuildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.BasePath, "base-path", "", "prefix for every filter path (e.g. conditions)")
	cmd.Flags().StringVar(&f.Casing, "casing", "", "path segment casing (camel|identity)")
	cmd.Flags().StringVar(&f.ReservedKey, "reserved-key", "", "member holding span declarations (default Spans)")
	cmd.Flags().StringSliceVar(&f.Normalize, "normalize", nil, "leaf paths whose string values are lower cased")
}

// builderOptions merges flags over config.
func (f *BuildFlags) builderOptions(root *RootOptions) (builder.Options, error) {
	cfg := root.settings()

	basePath := cfg.BasePath
	if f.BasePath != "" {
		basePath = f.BasePath
	}
	casingName := cfg.Casing
	if f.Casing != "" {
		casingName = f.Casing
	}
	casing, ok := naming.Lookup(casingName)
	if !ok {
		return builder.Options{}, fmt.Errorf("unknown casing %q", casingName)
	}
	reserved := cfg.ReservedKey
	if f.ReservedKey != "" {
		reserved = f.ReservedKey
	}
	if reserved == "" {
		reserved = span.DefaultKey
	}
	normalize := cfg.Normalize
	if len(f.Normalize) > 0 {
		normalize = f.Normalize
	}

	return builder.Options{
		BasePath:       basePath,
		Casing:         casing,
		ReservedKey:    reserved,
		NormalizePaths: normalize,
		Logger:         root.logger(),
	}, nil
}

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	BuildFlags
}

// BuildResult is the JSON payload of the build command.
type BuildResult struct {
	Filter      json.RawMessage `json:"filter"`
	Fingerprint string          `json:"fingerprint"`
	Leaves      int             `json:"leaves"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <request-file>",
		Short: "Build the filter for a request",
		Long: `Build the filter expression for a request file.

The request format is chosen by extension (.json, .yaml, .yml, .cue);
"-" reads JSON from stdin. Text output is the indented filter tree; JSON
output carries the canonical filter, its fingerprint and leaf count.

Exit codes:
  0 - Filter built
  1 - Request rejected (span of unknown kind)
  2 - Command error (missing file, undecodable input, bad flags)

Examples:
  spanfilter build request.json
  spanfilter build --base-path conditions request.yaml
  spanfilter build --format json request.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	opts.BuildFlags.register(cmd)

	return cmd
}

func runBuild(opts *BuildOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	expr, err := buildFromFile(opts.RootOptions, &opts.BuildFlags, path, cmd)
	if err != nil {
		return reportBuildError(formatter, err)
	}

	formatter.VerboseLog("built filter with %d leaves", len(filter.Leaves(expr)))

	if opts.Format != "json" {
		fmt.Fprint(cmd.OutOrStdout(), filter.Format(expr))
		return nil
	}

	canonical, err := filter.MarshalJSON(expr)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to encode filter", err)
	}
	fingerprint, err := filter.Fingerprint(expr)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to fingerprint filter", err)
	}
	return formatter.Success(BuildResult{
		Filter:      canonical,
		Fingerprint: fingerprint,
		Leaves:      len(filter.Leaves(expr)),
	})
}

// buildFromFile loads a request and builds its filter.
func buildFromFile(root *RootOptions, flags *BuildFlags, path string, cmd *cobra.Command) (filter.Expression, error) {
	bopts, err := flags.builderOptions(root)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}

	request, err := LoadValue(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	root.logger().Debug("request loaded", "path", path)

	expr, err := builder.Build(request, bopts)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// reportBuildError writes a JSON error response when requested and maps
// the error to an exit code.
func reportBuildError(formatter *OutputFormatter, err error) error {
	var (
		exitErr *ExitError
		loadErr *LoadError
		cfgErr  *builder.ConfigurationError
	)
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.As(err, &loadErr):
		if formatter.Format == "json" {
			_ = formatter.Error(loadErr.Code, loadErr.Error(), map[string]string{"path": loadErr.Path})
		}
		return WrapExitError(ExitCommandError, "failed to load request", err)
	case errors.As(err, &cfgErr):
		if formatter.Format == "json" {
			_ = formatter.Error(ErrCodeSpanType, cfgErr.Error(), map[string]any{
				"span_index": cfgErr.SpanIndex,
				"span":       cfgErr.Span.String(),
			})
		}
		return WrapExitError(ExitFailure, "request rejected", err)
	default:
		return WrapExitError(ExitFailure, "build failed", err)
	}
}
