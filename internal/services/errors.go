package services

// ValidationError reports invalid input (empty item list, bad quantity,
// missing required fields). No mutation has been performed when it is
// returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthorizationError reports that the acting user lacks the role required for
// the operation, or could not be verified at all.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}
