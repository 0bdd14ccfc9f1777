package services

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	reservationPrefix = "RSV"
	reservationDigits = 12
)

// NewReservationNumber returns "RSV" followed by 12 decimal digits taken from
// the leading 64 bits of a random (v4) UUID.
func NewReservationNumber() string {
	id := uuid.New()
	value := binary.BigEndian.Uint64(id[:8])

	digits := strconv.FormatUint(value, 10)
	if len(digits) > reservationDigits {
		digits = digits[:reservationDigits]
	} else if len(digits) < reservationDigits {
		digits = strings.Repeat("0", reservationDigits-len(digits)) + digits
	}
	return reservationPrefix + digits
}
