package forms

import "errors"

// Sentinel kinds for form errors.
var (
	ErrInvalidForm = errors.New("invalid form")
	ErrWizardStep  = errors.New("wizard step out of order")
)
