package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/biyonik/leaps-query/internal/config"
	"github.com/biyonik/leaps-query/internal/descriptor"
	"github.com/biyonik/leaps-query/pkg/container"
	"github.com/biyonik/leaps-query/pkg/database/query"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand(app *App) *cobra.Command {
	var (
		dialect string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a query document to SQL",
		Long:  "Compile a YAML or JSON query document into SQL and bindings without touching a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.OutOrStdout(), app, args[0], dialect, asJSON)
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", "", "SQL dialect (defaults to the configured driver's dialect)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statements as JSON")

	return cmd
}

func runCompile(out io.Writer, app *App, path, dialect string, asJSON bool) error {
	doc, err := descriptor.LoadFile(path)
	if err != nil {
		return err
	}

	grammar, err := resolveGrammar(app, dialect)
	if err != nil {
		return err
	}

	statements, err := doc.Compile(query.NewBuilder(grammar, nil, nil))
	if err != nil {
		return errors.Wrap(err, "compile failed")
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statements)
	}

	for _, stmt := range statements {
		bindings, err := json.Marshal(stmt.Bindings)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s;\n-- bindings: %s\n", stmt.SQL, bindings)
	}
	return nil
}

func resolveGrammar(app *App, dialect string) (query.Grammar, error) {
	if dialect == "" {
		return container.GetGrammar(app.Container)
	}

	cfg, err := container.Resolve[*config.Config](app.Container)
	if err != nil {
		return nil, err
	}
	override := *cfg
	override.Grammar.Dialect = dialect
	return override.NewGrammar()
}
