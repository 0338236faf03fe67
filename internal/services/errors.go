package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"airport-booking/skyport/internal/constants"
)

// ErrAlreadyExists is returned when a write collides with a unique name
var ErrAlreadyExists = errors.New(constants.MsgAlreadyExists)

// ValidationError maps request fields to the reason they were rejected
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return constants.MsgValidationFailed + ": " + strings.Join(parts, "; ")
}

// fieldErrors collects per-field problems while checking a request
type fieldErrors map[string]string

func (f fieldErrors) add(field, reason string) {
	if _, exists := f[field]; !exists {
		f[field] = reason
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// SeatErrors maps occupancy, row and seat to a reason for one ticket
type SeatErrors map[string]string

// OrderValidationError rejects a whole order. Either Message is set for a problem
// with the order itself, or Tickets holds the errors of each failing ticket keyed
// by its position in the request.
type OrderValidationError struct {
	Message string
	Tickets map[int]SeatErrors
}

func (e *OrderValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %d ticket(s) rejected", constants.MsgInvalidOrder, len(e.Tickets))
}

// TicketErrors are the failures of one ticket, identified by its position in the request
type TicketErrors struct {
	Index  int        `json:"index"`
	Errors SeatErrors `json:"errors"`
}

// Details is the client facing error body. Ticket errors are listed in submission order.
func (e *OrderValidationError) Details() map[string]any {
	if e.Message != "" {
		return map[string]any{constants.FieldTickets: e.Message}
	}

	ordered := make([]TicketErrors, 0, len(e.Tickets))
	for index, fields := range e.Tickets {
		ordered = append(ordered, TicketErrors{Index: index, Errors: fields})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })
	return map[string]any{constants.FieldTickets: ordered}
}

// HasOccupancyConflict reports whether any ticket failed because its seat was taken
func (e *OrderValidationError) HasOccupancyConflict() bool {
	for _, fields := range e.Tickets {
		if _, ok := fields[constants.FieldOccupancy]; ok {
			return true
		}
	}
	return false
}
