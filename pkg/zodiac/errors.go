package zodiac

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every DomainError via errors.Is
var ErrDomain = errors.New("domain error")

// DomainError reports an input outside the domain of a lookup: an unknown
// sign, planet or house system name, or a degree outside its valid range.
type DomainError struct {
	Kind  string // what was being looked up, e.g. "sign", "sign degree"
	Value string // the offending input as given
	Msg   string // optional detail
}

func (e *DomainError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Msg)
	}
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

// Is lets callers test for ErrDomain without caring about the details
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// NewDomainError builds a DomainError, formatting value with %v
func NewDomainError(kind string, value any, msg string) *DomainError {
	return &DomainError{Kind: kind, Value: fmt.Sprint(value), Msg: msg}
}
