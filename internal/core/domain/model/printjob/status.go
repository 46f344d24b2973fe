package printjob

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Success
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "UNKNOWN",
		Pending: "PENDING",
		Success: "SUCCESS",
		Failed:  "FAILED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s != Pending && s != Success && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause("print job status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Success || s == Failed
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("print job status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// PrintType selects which documents a job prints.
type PrintType string

const (
	PrintReceipt PrintType = "receipt"
	PrintKitchen PrintType = "kitchen"
	PrintBoth    PrintType = "both"
)

func ParsePrintType(s string) (PrintType, error) {
	switch pt := PrintType(s); pt {
	case PrintReceipt, PrintKitchen, PrintBoth:
		return pt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("print type", fmt.Errorf("%q is not one of receipt, kitchen, both", s))
	}
}

func (p PrintType) IncludesReceipt() bool {
	return p == PrintReceipt || p == PrintBoth
}

func (p PrintType) IncludesKitchen() bool {
	return p == PrintKitchen || p == PrintBoth
}
