package validators

import (
	"errors"
	"time"
)

var (
	ErrDateOfBirthEmpty   = errors.New("no date of birth provided")
	ErrDateOfBirthInvalid = errors.New("date of birth must be in format YYYY-MM-DD")
)

func DateOfBirthValidator(d string) error {
	if d == "" {
		return ErrDateOfBirthEmpty
	}

	if _, err := time.Parse("2006-01-02", d); err != nil {
		return ErrDateOfBirthInvalid
	}

	return nil
}
