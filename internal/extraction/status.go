package extraction

import (
	"math"
	"time"
)

// Status classifies an expiry date relative to "now".
type Status string

const (
	StatusValid        Status = "Valid"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusExpired      Status = "Expired"
)

// expiringSoonDays is the inclusive window, in days, for the warning status.
const expiringSoonDays = 30

// DeriveStatus classifies expiryDate against today. Empty or unparseable
// dates fail open to Valid.
func DeriveStatus(expiryDate string, today time.Time) Status {
	if expiryDate == "" {
		return StatusValid
	}
	expiry, err := time.Parse("2006-01-02", NormalizeDate(expiryDate))
	if err != nil {
		return StatusValid
	}

	days := int(math.Ceil(expiry.Sub(today).Hours() / 24))
	switch {
	case days < 0:
		return StatusExpired
	case days <= expiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusValid
	}
}
