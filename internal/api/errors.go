package api

import "fmt"

// ConflictError reports a join rejected because the seat is already
// occupied. The message comes from the server and is shown to the user.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError reports a placement the server refused to apply. The
// local state is untouched since the placement never happened.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d from %s", e.status, e.url)
}
