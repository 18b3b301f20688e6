package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a record id does not
	// exist for the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidWeek indicates a week index that is not a positive integer
	// or a date outside the plan it is resolved against.
	ErrInvalidWeek = errors.New("invalid week")
	// ErrNoPlan indicates an operation that needs the user's plan when none
	// exists.
	ErrNoPlan = errors.New("no active plan")
)
