// -----------------------------------------------------------------------------
// Container Helper Functions
// -----------------------------------------------------------------------------
// This file provides convenient helper functions for the services every
// command needs, so call sites read:
//   container.GetConnection(c)
// instead of:
//   container.MustResolve[*database.Connection](c)
// -----------------------------------------------------------------------------

package container

import (
	"log"

	"github.com/biyonik/leaps-query/internal/config"
	"github.com/biyonik/leaps-query/pkg/database"
	"github.com/biyonik/leaps-query/pkg/database/query"
	"github.com/biyonik/leaps-query/pkg/events"
)

// GetLogger retrieves the logger from the container.
func GetLogger(c *Container) *log.Logger {
	return MustResolve[*log.Logger](c)
}

// GetConfig retrieves the application config from the container.
//
// Example:
//
//	cfg := container.GetConfig(c)
//	driver := cfg.DB.Driver
func GetConfig(c *Container) *config.Config {
	return MustResolve[*config.Config](c)
}

// GetGrammar retrieves the offline SQL grammar from the container.
func GetGrammar(c *Container) (query.Grammar, error) {
	return Resolve[query.Grammar](c)
}

// GetConnection retrieves the database connection from the container. The
// connection is opened on first use.
func GetConnection(c *Container) (*database.Connection, error) {
	return Resolve[*database.Connection](c)
}

// GetDispatcher retrieves the event dispatcher the connection publishes to.
func GetDispatcher(c *Container) *events.Dispatcher {
	return MustResolve[*events.Dispatcher](c)
}
