package models

import (
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	RequesterID int64   `json:"-"`
	UserID      int64   `json:"userId"`
	Status      *string `json:"status,omitempty"` // pending, confirmed, ... (синонимы тоже)
	Kind        *string `json:"kind,omitempty"`   // upcoming | past
}

// GetProviderRequestsRequest запрос на получение очереди провайдера
type GetProviderRequestsRequest struct {
	UserID     int64   `json:"-"`
	ProviderID int64   `json:"providerId"`
	Status     *string `json:"status,omitempty"`
}

// GetUserCalendarRequest запрос на получение календаря пользователя
type GetUserCalendarRequest struct {
	RequesterID int64   `json:"-"`
	UserID      int64   `json:"userId"`
	Kind        *string `json:"kind,omitempty"`
}

// Response модели

// BookingResponse запись пользователя с вычисляемыми полями
type BookingResponse struct {
	ID           string                 `json:"id"`
	UserID       int64                  `json:"userId"`
	ProviderID   int64                  `json:"providerId"`
	ProviderName string                 `json:"providerName"`
	Service      string                 `json:"service"`
	Date         string                 `json:"date"`
	Time         string                 `json:"time"`
	Notes        string                 `json:"notes"`
	Status       string                 `json:"status"`
	StatusLabel  string                 `json:"statusLabel"`
	Kind         string                 `json:"type"`
	Details      *domain.ServiceDetails `json:"details,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ProviderRequestResponse заявка в очереди провайдера
type ProviderRequestResponse struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	ClientPhone string    `json:"clientPhone"`
	Service     string    `json:"service"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProviderRequestListResponse ответ со списком заявок
type ProviderRequestListResponse struct {
	Requests []ProviderRequestResponse `json:"requests"`
}

// CalendarEntryResponse запись календаря
type CalendarEntryResponse struct {
	ID           string                 `json:"id"`
	ProviderName string                 `json:"providerName"`
	Service      string                 `json:"service"`
	Date         string                 `json:"date"`
	Time         string                 `json:"time"`
	Location     string                 `json:"location,omitempty"`
	Status       string                 `json:"status"`
	StatusLabel  string                 `json:"statusLabel"`
	Kind         string                 `json:"type"`
	Details      *domain.ServiceDetails `json:"details,omitempty"`
}

// CalendarResponse ответ с календарем пользователя
type CalendarResponse struct {
	Appointments []CalendarEntryResponse `json:"appointments"`
}

// BookingViewsResponse одна запись во всех представлениях.
// Consistent=false, если какой-то копии нет или она расходится с авторитетной записью.
type BookingViewsResponse struct {
	Booking    *BookingResponse         `json:"booking"`
	Request    *ProviderRequestResponse `json:"request,omitempty"`
	Calendar   *CalendarEntryResponse   `json:"calendar,omitempty"`
	Consistent bool                     `json:"consistent"`
	Drift      []string                 `json:"drift,omitempty"` // представления, расходящиеся с записью
}

// CheckConsistency сверяет копии с авторитетной записью по статусу, дате и слоту
func (v *BookingViewsResponse) CheckConsistency() {
	v.Drift = nil
	b := v.Booking
	if v.Request == nil || v.Request.Status != b.Status || v.Request.Date != b.Date || v.Request.Time != b.Time {
		v.Drift = append(v.Drift, ledger.ProjectionProviderRequests)
	}
	if v.Calendar == nil || v.Calendar.Status != b.Status || v.Calendar.Date != b.Date || v.Calendar.Time != b.Time {
		v.Drift = append(v.Drift, ledger.ProjectionCalendar)
	}
	v.Consistent = len(v.Drift) == 0
}

// Методы конвертации

// FromDomainBooking конвертирует запись в DTO. Статус и тип считаются на момент now.
func FromDomainBooking(b *domain.BookingRecord, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}
	status := b.EffectiveStatus(now)
	return &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		ProviderID:   b.ProviderID,
		ProviderName: b.ProviderName,
		Service:      b.ServiceLabel,
		Date:         b.Date,
		Time:         b.Time.String(),
		Notes:        b.Notes,
		Status:       string(status),
		StatusLabel:  domain.DisplayLabel(status),
		Kind:         string(b.Kind(now)),
		Details:      b.Details,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainProviderRequest конвертирует заявку в DTO
func FromDomainProviderRequest(r *domain.ProviderRequest, now time.Time) *ProviderRequestResponse {
	if r == nil {
		return nil
	}
	status := effective(r.Status, r.Date, r.Time, now)
	return &ProviderRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Service:     r.ServiceLabel,
		Date:        r.Date,
		Time:        r.Time.String(),
		Notes:       r.Notes,
		Status:      string(status),
		StatusLabel: domain.DisplayLabel(status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainCalendarEntry конвертирует запись календаря в DTO
func FromDomainCalendarEntry(e *domain.CalendarEntry, now time.Time) *CalendarEntryResponse {
	if e == nil {
		return nil
	}
	status := effective(e.Status, e.Date, e.Time, now)
	return &CalendarEntryResponse{
		ID:           e.ID,
		ProviderName: e.ProviderName,
		Service:      e.Service,
		Date:         e.Date,
		Time:         e.Time.String(),
		Location:     e.Location,
		Status:       string(status),
		StatusLabel:  domain.DisplayLabel(status),
		Kind:         string(e.Kind(now)),
		Details:      e.Details,
	}
}

// ParseKind upcoming | past
func ParseKind(s string) (domain.BookingKind, error) {
	switch k := domain.BookingKind(s); k {
	case domain.KindUpcoming, domain.KindPast:
		return k, nil
	}
	return "", domain.NewFieldError("type", "expected upcoming or past")
}

func effective(status domain.BookingStatus, date string, slot types.SlotLabel, now time.Time) domain.BookingStatus {
	r := domain.BookingRecord{Status: status, Date: date, Time: slot}
	return r.EffectiveStatus(now)
}
