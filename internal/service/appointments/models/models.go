package models

import (
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// CreateAppointmentRequest запрос на создание записи на прием
type CreateAppointmentRequest struct {
	RequesterID     int64  `json:"-"`
	UserID          int64  `json:"user_id"`
	ProviderID      int64  `json:"provider_id"`
	ServiceType     string `json:"service_type"`
	AppointmentDate string `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time"` // HH:MM или 10:00 AM
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// AppointmentResponse запись на прием
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ProviderID      int64     `json:"providerId"`
	ServiceType     string    `json:"serviceType"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`

	// Заполняются только в списке
	UserName       string `json:"userName,omitempty"`
	ProviderUserID int64  `json:"providerUserId,omitempty"`
	ProviderName   string `json:"providerName,omitempty"`
	Designation    string `json:"designation,omitempty"`
	Location       string `json:"location,omitempty"`
}

// AppointmentListResponse список записей пользователя
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует запись в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		ProviderID:      a.ProviderID,
		ServiceType:     a.ServiceType,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: a.AppointmentTime,
		DurationMinutes: a.DurationMinutes,
		Notes:           a.Notes,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}

// FromDomainAppointmentDetails конвертирует запись с данными участников в DTO
func FromDomainAppointmentDetails(d *domain.AppointmentDetails) AppointmentResponse {
	resp := FromDomainAppointment(&d.Appointment)
	resp.UserName = d.UserName
	resp.ProviderUserID = d.ProviderUserID
	resp.ProviderName = d.ProviderName
	resp.Designation = d.Designation
	resp.Location = d.Location
	return *resp
}
