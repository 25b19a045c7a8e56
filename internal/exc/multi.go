package exc

import (
	"errors"
	"strings"
)

// MultiException is the error form of everything a Reporter collected.
type MultiException []Exception

func (self MultiException) Error() string {
	msgs := make([]string, 0, len(self))
	for _, e := range self {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Codes lists the code of every contained exception in order.
func (self MultiException) Codes() []string {
	codes := make([]string, 0, len(self))
	for _, e := range self {
		codes = append(codes, e.Code())
	}
	return codes
}

// Flatten converts any error into a list of exceptions. Nested
// MultiException values are expanded and plain errors are wrapped as
// unknown failures at the given location.
func Flatten(location Location, err error) []Exception {
	if err == nil {
		return nil
	}
	var multi MultiException
	if errors.As(err, &multi) {
		return append([]Exception(nil), multi...)
	}
	var e Exception
	if errors.As(err, &e) {
		return []Exception{e}
	}
	return []Exception{WrapUnknown(location, err)}
}
