package withdrawal

import "errors"

// Service errors
var (
	ErrInvalidAmount           = errors.New("invalid withdrawal amount")
	ErrExceedsLimit            = errors.New("amount exceeds available limit")
	ErrEmployerLinkMissing     = errors.New("employee is not linked to an employer")
	ErrVerificationNotApproved = errors.New("employee verification is not approved")
	ErrNotAnEmployee           = errors.New("only employees can request withdrawals")
)
