package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/appointy-booking/pkg/types"
)

// Trigger an action applied to an existing booking request
type Trigger string

const (
	TriggerAccept     Trigger = "accept"     // provider accepts a pending request
	TriggerDecline    Trigger = "decline"    // provider declines a pending request
	TriggerConfirm    Trigger = "confirm"    // requester confirms a pending request
	TriggerReject     Trigger = "reject"     // requester withdraws a pending request
	TriggerReschedule Trigger = "reschedule" // requester or provider moves a confirmed booking
	TriggerCancel     Trigger = "cancel"     // requester or provider cancels a confirmed booking
	TriggerComplete   Trigger = "complete"   // provider closes a past confirmed booking
)

// Actor who applies a transition. ProviderID is 0 for plain users.
type Actor struct {
	UserID     int64
	ProviderID int64
}

// IsRequester returns true if the actor created the booking
func (a Actor) IsRequester(b *BookingRecord) bool {
	return a.UserID != 0 && a.UserID == b.UserID
}

// IsProvider returns true if the actor is the target provider of the booking
func (a Actor) IsProvider(b *BookingRecord) bool {
	return a.ProviderID != 0 && a.ProviderID == b.ProviderID
}

type transitionRule struct {
	from    BookingStatus
	to      BookingStatus
	allowed func(a Actor, b *BookingRecord) bool
}

func providerOnly(a Actor, b *BookingRecord) bool  { return a.IsProvider(b) }
func requesterOnly(a Actor, b *BookingRecord) bool { return a.IsRequester(b) }
func eitherSide(a Actor, b *BookingRecord) bool    { return a.IsProvider(b) || a.IsRequester(b) }

var transitionRules = map[Trigger]transitionRule{
	TriggerAccept:     {from: StatusPending, to: StatusConfirmed, allowed: providerOnly},
	TriggerDecline:    {from: StatusPending, to: StatusCancelled, allowed: providerOnly},
	TriggerConfirm:    {from: StatusPending, to: StatusConfirmed, allowed: requesterOnly},
	TriggerReject:     {from: StatusPending, to: StatusCancelled, allowed: requesterOnly},
	TriggerReschedule: {from: StatusConfirmed, to: StatusConfirmed, allowed: eitherSide},
	TriggerCancel:     {from: StatusConfirmed, to: StatusCancelled, allowed: eitherSide},
	TriggerComplete:   {from: StatusConfirmed, to: StatusCompleted, allowed: providerOnly},
}

// ParseTrigger maps a string to a known trigger
func ParseTrigger(s string) (Trigger, error) {
	t := Trigger(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitionRules[t]; !ok {
		return "", NewFieldError("action", fmt.Sprintf("unknown action %q", s))
	}
	return t, nil
}

// Slot requested date and time
type Slot struct {
	Date string
	Time string
}

// Change result of a legal transition, applied by the ledger to every projection.
// Empty Date/Time mean "unchanged".
type Change struct {
	Trigger Trigger
	From    BookingStatus
	Status  BookingStatus
	Date    string
	Time    types.SlotLabel
}

// ApplyTo returns a copy of b with the change applied
func (c Change) ApplyTo(b *BookingRecord, at time.Time) *BookingRecord {
	out := b.Clone()
	out.Status = c.Status
	if c.Date != "" {
		out.Date = c.Date
	}
	if c.Time != "" {
		out.Time = c.Time
	}
	out.UpdatedAt = at
	return out
}

// Transition checks a trigger against the record's current status and the actor,
// and returns the change to persist. The record itself is never modified.
//
// Order of checks: source status, actor, payload.
// A past confirmed booking is observed as completed, so only TriggerComplete
// can still move it.
func Transition(b *BookingRecord, trigger Trigger, actor Actor, slot *Slot, now time.Time) (Change, error) {
	rule, ok := transitionRules[trigger]
	if !ok {
		return Change{}, fmt.Errorf("%w: unknown trigger %q", ErrIllegalTransition, trigger)
	}

	current := b.EffectiveStatus(now)
	if trigger == TriggerComplete {
		if b.Status != StatusConfirmed || b.Kind(now) != KindPast {
			return Change{}, fmt.Errorf("%w: %s from %s (upcoming=%t)",
				ErrIllegalTransition, trigger, b.Status, b.Kind(now) == KindUpcoming)
		}
		current = b.Status
	}

	if current.IsTerminal() && trigger != TriggerComplete {
		return Change{}, fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, current)
	}
	if current != rule.from {
		return Change{}, fmt.Errorf("%w: %s from %s", ErrIllegalTransition, trigger, current)
	}

	if !rule.allowed(actor, b) {
		return Change{}, fmt.Errorf("%w: user=%d cannot %s booking id=%s", ErrAccessDenied, actor.UserID, trigger, b.ID)
	}

	change := Change{Trigger: trigger, From: b.Status, Status: rule.to}

	if trigger == TriggerReschedule {
		date, label, err := validateSlot(slot)
		if err != nil {
			return Change{}, err
		}
		change.Date = date
		change.Time = label
	}

	return change, nil
}

func validateSlot(slot *Slot) (string, types.SlotLabel, error) {
	if slot == nil || strings.TrimSpace(slot.Date) == "" {
		return "", "", NewFieldError("date", "required")
	}
	if strings.TrimSpace(slot.Time) == "" {
		return "", "", NewFieldError("time", "required")
	}

	date := strings.TrimSpace(slot.Date)
	if _, err := time.Parse(DateFormat, date); err != nil {
		return "", "", NewFieldError("date", "expected YYYY-MM-DD")
	}
	label, err := types.ParseSlotLabel(slot.Time)
	if err != nil {
		return "", "", NewFieldError("time", "expected a slot like 10:00 AM")
	}

	return date, label, nil
}

// ValidateSlot validates and normalizes a requested date and time
func ValidateSlot(slot Slot) (string, types.SlotLabel, error) {
	return validateSlot(&slot)
}
