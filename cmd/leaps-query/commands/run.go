package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/biyonik/leaps-query/internal/descriptor"
	"github.com/biyonik/leaps-query/pkg/container"
	"github.com/biyonik/leaps-query/pkg/database"
	"github.com/biyonik/leaps-query/pkg/events"
)

// NewRunCommand creates the run command.
func NewRunCommand(app *App) *cobra.Command {
	var (
		inTransaction bool
		profile       bool
	)

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a query document against the configured database",
		Long:  "Run a YAML or JSON query document and print the rows, the inserted id or the affected row count as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := descriptor.LoadFile(args[0])
			if err != nil {
				return err
			}

			conn, err := container.GetConnection(app.Container)
			if err != nil {
				return err
			}

			if profile {
				listenProfile(cmd.ErrOrStderr(), container.GetDispatcher(app.Container))
			}

			ctx := cmd.Context()
			var result *descriptor.Result
			if inTransaction {
				err = conn.Transaction(ctx, func(tx *database.Transaction) error {
					var err error
					result, err = doc.Execute(ctx, tx.Query())
					return err
				})
			} else {
				result, err = doc.Execute(ctx, conn.Query())
			}
			if err != nil {
				return errors.Wrap(err, "run failed")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().BoolVar(&inTransaction, "tx", false, "Run inside a transaction")
	cmd.Flags().BoolVar(&profile, "profile", false, "Print every executed statement with its duration to stderr")

	return cmd
}

func listenProfile(w io.Writer, d *events.Dispatcher) {
	d.Listen(events.QueryExecutedEvent, events.ListenerFunc(func(e events.Event) error {
		q := e.(*events.QueryExecuted)
		status := "ok"
		if q.Err != nil {
			status = q.Err.Error()
		}
		fmt.Fprintf(w, "⏱  %s [%d bindings] %s (%s)\n", q.SQL, len(q.Bindings), q.Duration, status)
		return nil
	}))
	for _, name := range []string{events.TransactionBeginningEvent, events.TransactionCommittedEvent, events.TransactionRolledBackEvent} {
		d.Listen(name, events.ListenerFunc(func(e events.Event) error {
			fmt.Fprintf(w, "⏱  %s\n", e.Name())
			return nil
		}))
	}
}
