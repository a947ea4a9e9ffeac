package domain

import (
	"strconv"
	"strings"
	"time"
)

// Doctor is a practitioner profile. AvailableTimes holds opaque slot
// labels in the form "09:00-10:00"; order is display order and the
// model makes no dedup or sort guarantee.
type Doctor struct {
	ID             string
	Name           string
	Specialty      string
	Email          string
	Phone          string
	AvailableTimes []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SlotPeriod classifies a slot label as morning or afternoon based on
// its start hour. Labels that do not parse report false.
func SlotPeriod(slot string) (morning bool, ok bool) {
	start, _, found := strings.Cut(slot, "-")
	if !found {
		return false, false
	}
	hh, _, found := strings.Cut(strings.TrimSpace(start), ":")
	if !found {
		return false, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return false, false
	}
	return hour < 12, true
}
