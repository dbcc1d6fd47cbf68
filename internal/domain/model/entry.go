package model

import "time"

// Entry describes one stored secret without exposing its value. Listing
// backends return entries so callers can inventory a service's secrets
// without decrypting anything.
type Entry struct {
	Service   string
	Account   string
	UpdatedAt time.Time
}
