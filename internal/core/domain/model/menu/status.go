package menu

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the publication state of a menu version.
type Status int

const (
	Unknown Status = iota
	Draft
	Confirmed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Confirmed: "CONFIRMED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s != Draft && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause("menu status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("menu status is invalid", fmt.Errorf("%q is not a valid status", s))
}
