package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("model: invalid completion status")
	ErrEmptyName     = errors.New("model: habit name is required")
)

// Status is the recorded outcome of one habit on one day. Absence of an
// entry means "unset"; there is no explicit unset value.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

func ParseStatus(input string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, input)
	}
	return s, nil
}

// Habit is a user-defined recurring behavior tracked per calendar day.
// CreatedAt is epoch milliseconds; the persisted format must stay readable
// by data exported from older installs.
type Habit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// NewHabit generates the habit id; ids are never user-supplied.
func NewHabit(name string, now time.Time) (Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Habit{}, ErrEmptyName
	}
	return Habit{
		ID:        uuid.NewString(),
		Name:      trimmed,
		CreatedAt: now.UnixMilli(),
	}, nil
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if h.CreatedAt <= 0 {
		return errors.New("model: habit createdAt is required")
	}
	return nil
}
