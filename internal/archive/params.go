package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Scope-resolution failures surfaced to the caller.  All of them abort the
// run before any document is written.
var (
	ErrBadEmail        = errors.New("malformed user email")
	ErrDateOrder       = errors.New("start date is after end date")
	ErrUserNotFound    = errors.New("user not found in the roster")
	ErrChannelNotFound = errors.New("channel not found in the archive")
	ErrDateOutOfRange  = errors.New("date range outside the archive bounds")
	ErrUserNotActive   = errors.New("user has no activity in the requested scope")
)

// Params selects what BuildIndex exports: an optional target user by email,
// an optional inclusive date range, an optional single channel or group by
// name or id, and the timezone the message times are rendered in.
type Params struct {
	Email    string         `validate:"omitempty,email"`
	Start    time.Time      `validate:"-"`
	End      time.Time      `validate:"-"`
	Channel  string         `validate:"-"`
	Location *time.Location `validate:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the parameter shape.  It runs before the container is
// touched, so a bad email or an inverted range fails fast.
func (p *Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %q", ErrBadEmail, p.Email)
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return fmt.Errorf("%w: %s > %s", ErrDateOrder,
			p.Start.Format(dateLayout), p.End.Format(dateLayout))
	}
	return nil
}

// location returns the rendering timezone, local time when unset.
func (p *Params) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}
