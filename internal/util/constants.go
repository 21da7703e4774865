package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ContextUserKey is where the auth middleware stores the parsed claims.
const ContextUserKey = "user"
