package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// AllStatuses canonical statuses in lifecycle order
var AllStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// statusSynonyms legacy spellings still sent by older clients
var statusSynonyms = map[string]BookingStatus{
	"pending":   StatusPending,
	"confirmed": StatusConfirmed,
	"accepted":  StatusConfirmed,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"declined":  StatusCancelled,
	"completed": StatusCompleted,
}

var titleCaser = cases.Title(language.English)

// ParseStatus maps a status string (including synonyms) to the canonical enum
func ParseStatus(s string) (BookingStatus, error) {
	status, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", NewFieldError("status", fmt.Sprintf("unknown status %q", s))
	}
	return status, nil
}

// IsValid returns true for one of the four canonical values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is accepted
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive returns true if the booking still holds its slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DisplayLabel presentation label: "Confirmed", "Pending", ... or "Unknown"
func DisplayLabel(s BookingStatus) string {
	if !s.IsValid() {
		return "Unknown"
	}
	return titleCaser.String(string(s))
}
