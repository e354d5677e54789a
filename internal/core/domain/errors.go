package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalServer = errors.New("internal server error")
)

// Registry errors
var (
	ErrDuplicateApprover = errors.New("identity is already an approver")
)

// Formulation errors
var (
	ErrIngredientNotCertified        = errors.New("ingredient is not certified")
	ErrQuantityExceedsCertifiedLimit = errors.New("quantity exceeds certified limit")
)

// Lot errors
var (
	ErrFormulationNotApproved = errors.New("formulation is not approved")
	ErrRoleAlreadyBound       = errors.New("role is already bound for this lot")
	ErrInvalidStateTransition = errors.New("invalid lot state transition")
)
