package models

import (
	"strconv"
	"strings"
	"time"
)

// DefaultExpiryWarningDays is how close to expiry a record must be to get flagged.
const DefaultExpiryWarningDays = 7

// Medicine is one inventory record.
//
// A record with ID 0 is a draft the store has not seen yet. A record with an
// ID is owned by the store; local copies are snapshots and edits stay local
// until saved.
type Medicine struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	BatchNumber  string `json:"batchNumber"`
	Quantity     int    `json:"quantity"`
	ExpiryDate   Date   `json:"expiryDate"`
}

// IsDraft reports whether the store has not assigned an ID yet.
func (m Medicine) IsDraft() bool {
	return m.ID == 0
}

// Validate checks the required fields. Manufacturer is optional.
func (m Medicine) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return &ValidationError{Message: "Name is required"}
	case strings.TrimSpace(m.BatchNumber) == "":
		return &ValidationError{Message: "Batch number is required"}
	case m.ExpiryDate.IsZero():
		return &ValidationError{Message: "Expiry date is required"}
	}
	return nil
}

// Normalized returns a copy whose quantity is never negative.
func (m Medicine) Normalized() Medicine {
	if m.Quantity < 0 {
		m.Quantity = 0
	}
	return m
}

// ExpiringSoon reports whether the record expires on or before the day that
// is windowDays after now's calendar date. Already expired records count too.
func (m Medicine) ExpiringSoon(now time.Time, windowDays int) bool {
	limit := DateOf(now).AddDate(0, 0, windowDays)
	return !m.ExpiryDate.After(limit)
}

// Expired reports whether the expiry date lies before now's calendar date.
func (m Medicine) Expired(now time.Time) bool {
	return m.ExpiryDate.Before(DateOf(now).Time)
}

// Matches is a case-insensitive substring match on name or batch number.
// An empty term matches everything.
func (m Medicine) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), term) ||
		strings.Contains(strings.ToLower(m.BatchNumber), term)
}

// FilterMedicines returns the records matching term, preserving order.
func FilterMedicines(list []Medicine, term string) []Medicine {
	out := make([]Medicine, 0, len(list))
	for _, m := range list {
		if m.Matches(term) {
			out = append(out, m)
		}
	}
	return out
}

// ExpiringMedicines returns the records expiring between now's calendar
// date and windowDays later, both inclusive. Records already expired are
// left out.
func ExpiringMedicines(list []Medicine, now time.Time, windowDays int) []Medicine {
	out := make([]Medicine, 0)
	for _, m := range list {
		if m.ExpiringSoon(now, windowDays) && !m.Expired(now) {
			out = append(out, m)
		}
	}
	return out
}

// FindMedicine looks a record up by ID in a fetched list.
func FindMedicine(list []Medicine, id int64) (Medicine, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Medicine{}, false
}

// ParseQuantity turns free-form input into a non-negative quantity.
// Like parseInt it reads the leading integer and ignores the rest, so
// "12 boxes" is 12. Input without leading digits, negatives and values that
// overflow all become 0.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
