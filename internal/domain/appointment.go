package domain

import "time"

// Appointment backend appointment row
type Appointment struct {
	ID              int64
	UserID          int64
	ProviderID      int64
	ServiceType     string
	AppointmentDate time.Time
	AppointmentTime string // HH:MM
	DurationMinutes int
	Notes           string
	Status          string
	CreatedAt       time.Time
}

// AppointmentDetails appointment joined with user and provider data
type AppointmentDetails struct {
	Appointment
	UserName       string
	ProviderUserID int64
	ProviderName   string
	Designation    string
	Location       string
}
