package ledger

import "errors"

var ErrHabitNotFound = errors.New("ledger: habit not found")
