// Package badgerfx wires an embedded BadgerDB into the fx application:
// configuration, zap-backed logging, and deterministic close on shutdown.
package badgerfx

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

func New(config Config, logger *zapLogger) (*badger.DB, error) {
	opts := config.Build().
		WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}

	return db, nil
}
