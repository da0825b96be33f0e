// Package id generates the human-readable record identifiers used by the
// support desk, e.g. TK-lx2k9a1b-7QZ3M for tickets and MSG-lx2k9a1b-A9F for
// chat messages. The leading segment is the creation time in base36
// milliseconds, the trailing one is cryptographically random.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	PrefixTicket  = "TK"
	PrefixMessage = "MSG"
	PrefixUser    = "USR"
	PrefixLog     = "LOG"
)

var (
	ticketIDPattern  = regexp.MustCompile(`^TK-[0-9a-z]+-[0-9A-Z]{5}$`)
	messageIDPattern = regexp.MustCompile(`^MSG-[0-9a-z]+-[0-9A-Z]{3}$`)
)

// Random returns n random base36 characters.
func Random(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		buf[i] = alphabet[num.Int64()]
	}
	return string(buf), nil
}

// Base36Millis encodes t as base36 Unix milliseconds.
func Base36Millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

func generate(prefix string, t time.Time, randLen int, upper bool) (string, error) {
	r, err := Random(randLen)
	if err != nil {
		return "", err
	}
	if upper {
		r = strings.ToUpper(r)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, Base36Millis(t), r), nil
}

// NewTicketID returns TK-<base36 ms>-<5 upper base36>.
func NewTicketID(t time.Time) (string, error) {
	return generate(PrefixTicket, t, 5, true)
}

// NewMessageID returns MSG-<base36 ms>-<3 upper base36>.
func NewMessageID(t time.Time) (string, error) {
	return generate(PrefixMessage, t, 3, true)
}

// NewUserID returns USR-<base36 ms>-<8 upper base36>.
func NewUserID(t time.Time) (string, error) {
	return generate(PrefixUser, t, 8, true)
}

// NewLogID returns LOG-<decimal ms>-<5 lower base36>.
func NewLogID(t time.Time) (string, error) {
	r, err := Random(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", PrefixLog, t.UnixMilli(), r), nil
}

// IsTicketID reports whether s has the ticket identifier shape.
func IsTicketID(s string) bool {
	return ticketIDPattern.MatchString(s)
}

// IsMessageID reports whether s has the message identifier shape.
func IsMessageID(s string) bool {
	return messageIDPattern.MatchString(s)
}
