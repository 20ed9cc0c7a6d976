package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spanfilter/internal/store"
	"github.com/roach88/spanfilter/internal/value"
)

// IDField is the document member used as the document id on import.
const IDField = "id"

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Database   string     `json:"database"`
	IDs        []string   `json:"ids"`
	Total      int        `json:"total"`
	Duplicates [][]string `json:"duplicates,omitempty"` // ids sharing identical content
}

func (r ImportResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d document(s) into %s\n", r.Total, r.Database)
	for _, group := range r.Duplicates {
		fmt.Fprintf(&b, "Duplicate content: %s\n", strings.Join(group, ", "))
	}
	return b.String()
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <documents-file>",
		Short: "Load documents into a database",
		Long: `Load documents into a SQLite document database.

The file holds an array of documents (JSON, YAML or CUE by extension). A
document's string "id" member becomes its id; documents without one get
a fresh UUIDv7. Existing documents with the same id are replaced.

Examples:
  spanfilter import --db ./docs.db documents.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to config database)")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
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

	v, err := LoadValue(path, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load documents", err)
	}
	docs, ok := v.(value.Array)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: expected an array of documents, got %s", path, v.Kind()))
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

	ids := make([]string, 0, len(docs))
	for i, doc := range docs {
		id := documentID(doc)
		if id == "" {
			id = store.NewID()
		}
		if err := st.Put(ctx, id, doc); err != nil {
			if opts.Format == "json" {
				_ = formatter.Error(ErrCodeStore, err.Error(), map[string]int{"index": i})
			}
			return WrapExitError(ExitFailure, fmt.Sprintf("failed to store document %d", i), err)
		}
		formatter.VerboseLog("stored %s", id)
		ids = append(ids, id)
	}

	opts.logger().Info("documents imported", "db", dbPath, "count", len(ids))

	dups, err := st.Duplicates(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to check duplicates", err)
	}

	return formatter.Success(ImportResult{Database: dbPath, IDs: ids, Total: len(ids), Duplicates: dups})
}

// documentID returns the document's string id member, or "".
func documentID(doc value.Value) string {
	v, ok := value.Lookup(doc, IDField)
	if !ok {
		return ""
	}
	s, _ := v.(value.String)
	return string(s)
}
