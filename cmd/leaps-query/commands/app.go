// Package commands implements the leaps-query CLI commands.
package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/biyonik/leaps-query/internal/config"
	"github.com/biyonik/leaps-query/pkg/container"
	"github.com/biyonik/leaps-query/pkg/database"
	"github.com/biyonik/leaps-query/pkg/database/query"
	"github.com/biyonik/leaps-query/pkg/events"
)

// Version information (set by build)
var Version = "dev"

// App holds the state shared by all commands.
type App struct {
	Container  *container.Container
	ConfigPath string
}

// NewApp registers the services the commands resolve. Nothing is loaded or
// opened until a command asks for it, so flags are parsed by then.
func NewApp(logger *log.Logger) *App {
	app := &App{Container: container.New()}
	c := app.Container

	container.Instance(c, logger)
	container.Provide(c, func(*container.Container) (*config.Config, error) {
		return config.Load(app.ConfigPath)
	})
	container.Provide(c, func(c *container.Container) (query.Grammar, error) {
		cfg, err := container.Resolve[*config.Config](c)
		if err != nil {
			return nil, err
		}
		return cfg.NewGrammar()
	})
	container.Provide(c, func(c *container.Container) (*events.Dispatcher, error) {
		return events.NewDispatcher(container.GetLogger(c)), nil
	})
	container.Provide(c, func(c *container.Container) (*database.Connection, error) {
		cfg, err := container.Resolve[*config.Config](c)
		if err != nil {
			return nil, err
		}
		dispatcher := container.GetDispatcher(c)
		conn, err := database.Open(context.Background(), cfg.DatabaseConfig(), container.GetLogger(c))
		if err != nil {
			return nil, err
		}
		conn.SetEventDispatcher(dispatcher)
		return conn, nil
	})

	return app
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "leaps-query",
		Short:         "Compile and run structured SQL query documents",
		Long:          "leaps-query compiles YAML/JSON query documents into dialect-specific SQL and runs them against a database",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default ./leaps.yaml)")

	rootCmd.AddCommand(NewCompileCommand(app))
	rootCmd.AddCommand(NewRunCommand(app))
	rootCmd.AddCommand(NewDialectsCommand())

	return rootCmd
}
