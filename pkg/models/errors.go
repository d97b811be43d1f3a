package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of all errors for invalid ledger
	// entries. Check with errors.Is to match any of them.
	ErrValidation = errors.New("validation failed")

	ErrAmountNotPositive = fmt.Errorf("%w: the amount must be greater than 0", ErrValidation)
	ErrAmountTooLarge    = fmt.Errorf("%w: the amount must not be larger than %s", ErrValidation, AmountCap)
	ErrNoteEmpty         = fmt.Errorf("%w: the note must not be empty", ErrValidation)
	ErrNoteTooLong       = fmt.Errorf("%w: the note must not be longer than %d characters", ErrValidation, NoteMaxLength)
	ErrKindInvalid       = fmt.Errorf("%w: the kind must be either INCOME or EXPENSE", ErrValidation)
	ErrIDNotUnique       = fmt.Errorf("%w: a transaction with this ID already exists", ErrValidation)

	// ErrStore is returned when the database fails in a way we cannot
	// give the caller more useful information about.
	ErrStore = errors.New("an error occurred accessing the database")

	ErrResourceNotFound = errors.New("there is no")
)
