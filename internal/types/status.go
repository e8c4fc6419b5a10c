package types

// Status is a type for the lifecycle status of a persisted resource in the database.
// This is distinct from domain statuses like MembershipStatus and is used to
// determine if a row should be included in queries.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

type RunMode string

const (
	// ModeLocal is the mode for running the API server with local tooling
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
	// ModeProd is the mode for production deployments
	ModeProd RunMode = "prod"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
