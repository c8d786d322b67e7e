package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultMaxConnections is the pool ceiling used when the caller has no override
	DefaultMaxConnections = 25

	// DefaultMaxConnIdleTime is how long an idle connection may linger before closing
	DefaultMaxConnIdleTime = 30 * time.Minute

	// DefaultMaxConnLifetime is the hard cap on a connection's age
	DefaultMaxConnLifetime = time.Hour
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString     = "failed to parse connection string"
	ErrMsgFailedToCreatePool          = "failed to create connection pool"
	ErrMsgFailedToPingDatabase        = "failed to ping database"
	ErrMsgFailedToInitSchema          = "failed to initialize schema"
	ErrMsgFailedToBeginTransaction    = "failed to begin transaction"
	ErrMsgFailedToRollbackTransaction = "Failed to rollback transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)
