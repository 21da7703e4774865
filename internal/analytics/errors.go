package analytics

import "errors"

var (
	ErrInvalidMethod       = errors.New("INVALID_METHOD: unrecognized scoring method")
	ErrNoScorableResponses = errors.New("no response matched an active question with a numeric answer")
)
