package services

import (
	"fmt"
	"strings"

	"airport-booking/skyport/internal/constants"
)

const maxNameLength = 80

// requireText trims value and records a problem when it is empty or too long
func requireText(f fieldErrors, field, value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		f.add(field, constants.MsgRequired)
	case max > 0 && len([]rune(value)) > max:
		f.add(field, fmt.Sprintf(constants.MsgTooLongFormat, max))
	}
	return value
}

func requirePositive(f fieldErrors, field string, value int) {
	if value <= 0 {
		f.add(field, constants.MsgMustBePositive)
	}
}

func requireID(f fieldErrors, field string, value uint) {
	if value == 0 {
		f.add(field, constants.MsgRequired)
	}
}
