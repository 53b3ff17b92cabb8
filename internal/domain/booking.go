package domain

import (
	"time"

	"github.com/m04kA/appointy-booking/pkg/types"
)

// BookingKind upcoming or past, always derived from date and time at read time
type BookingKind string

const (
	KindUpcoming BookingKind = "upcoming"
	KindPast     BookingKind = "past"
)

// ServiceDetails optional details copied from the provider catalog at creation
type ServiceDetails struct {
	DurationMinutes int     `json:"durationMinutes"`
	Fee             float64 `json:"fee,omitempty"`
	Location        string  `json:"location,omitempty"`
}

// BookingRecord authoritative user-centric record of one appointment request
type BookingRecord struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"userId"`
	UserName     string          `json:"userName"`
	UserEmail    string          `json:"userEmail"`
	UserPhone    string          `json:"userPhone,omitempty"`
	ProviderID   int64           `json:"providerId"`
	ProviderName string          `json:"providerName"`
	ServiceLabel string          `json:"serviceLabel"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Time         types.SlotLabel `json:"time"`
	Notes        string          `json:"notes"`
	Status       BookingStatus   `json:"status"`
	Details      *ServiceDetails `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// StartsAt slot start in loc.
// If the time label is broken, the end of the day is used.
func (b *BookingRecord) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateFormat, b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	start, err := b.Time.On(day)
	if err != nil {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return start, nil
}

// Kind upcoming if the slot has not started yet
func (b *BookingRecord) Kind(now time.Time) BookingKind {
	start, err := b.StartsAt(now.Location())
	if err != nil || now.Before(start) {
		return KindUpcoming
	}
	return KindPast
}

// EffectiveStatus status as observed at now: a past confirmed booking is completed
func (b *BookingRecord) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusConfirmed && b.Kind(now) == KindPast {
		return StatusCompleted
	}
	return b.Status
}

// Clone deep copy, projections never share mutable state
func (b *BookingRecord) Clone() *BookingRecord {
	c := *b
	if b.Details != nil {
		d := *b.Details
		c.Details = &d
	}
	return &c
}

// ProviderRequest provider-facing copy: same id plus requester contact fields
type ProviderRequest struct {
	ID           string          `json:"id"`
	ProviderID   int64           `json:"providerId"`
	UserID       int64           `json:"userId"`
	ClientName   string          `json:"clientName"`
	ClientEmail  string          `json:"clientEmail"`
	ClientPhone  string          `json:"clientPhone"`
	ServiceLabel string          `json:"serviceLabel"`
	Date         string          `json:"date"`
	Time         types.SlotLabel `json:"time"`
	Notes        string          `json:"notes"`
	Status       BookingStatus   `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewProviderRequest builds the provider queue entry of a record
func NewProviderRequest(b *BookingRecord) *ProviderRequest {
	phone := b.UserPhone
	if phone == "" {
		phone = NotProvided
	}
	return &ProviderRequest{
		ID:           b.ID,
		ProviderID:   b.ProviderID,
		UserID:       b.UserID,
		ClientName:   b.UserName,
		ClientEmail:  b.UserEmail,
		ClientPhone:  phone,
		ServiceLabel: b.ServiceLabel,
		Date:         b.Date,
		Time:         b.Time,
		Notes:        b.Notes,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// CalendarEntry calendar-shaped copy kept in the per-user appointment list
type CalendarEntry struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"userId"`
	UserEmail    string          `json:"userEmail"`
	ProviderName string          `json:"providerName"`
	Service      string          `json:"service"`
	Date         string          `json:"date"`
	Time         types.SlotLabel `json:"time"`
	Location     string          `json:"location,omitempty"`
	Status       BookingStatus   `json:"status"`
	Details      *ServiceDetails `json:"details,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewCalendarEntry builds the calendar entry of a record
func NewCalendarEntry(b *BookingRecord) *CalendarEntry {
	entry := &CalendarEntry{
		ID:           b.ID,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		ProviderName: b.ProviderName,
		Service:      b.ServiceLabel,
		Date:         b.Date,
		Time:         b.Time,
		Status:       b.Status,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Details != nil {
		d := *b.Details
		entry.Details = &d
		entry.Location = d.Location
	}
	return entry
}

// Kind same derivation as BookingRecord.Kind
func (e *CalendarEntry) Kind(now time.Time) BookingKind {
	r := BookingRecord{Date: e.Date, Time: e.Time}
	return r.Kind(now)
}
