// Package card is the mock stand-in for an external card processor. It never
// keeps or logs the full card number or csv.
package card

import (
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	digitsPattern = regexp.MustCompile(`^[0-9]{4,19}$`)
)

// Card is the card as presented by the payer.
type Card struct {
	Number     string
	HolderName string
	Expiry     string // MM/YY
	CSV        string
}

// Result is everything about a card that survives verification.
type Result struct {
	MaskedRef string
	IsExpired bool
}

type Verifier struct {
	now func() time.Time
}

func NewVerifier() *Verifier {
	return &Verifier{now: time.Now}
}

// NewVerifierAt returns a verifier whose notion of "today" is fixed by now.
func NewVerifierAt(now func() time.Time) *Verifier {
	return &Verifier{now: now}
}

// Verify checks the card's expiry against the current month and masks the number.
// A card is usable through the last day of its expiry month.
func (v *Verifier) Verify(c Card) (Result, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(c.Number)
	if !digitsPattern.MatchString(number) {
		return Result{}, apperrors.NewValidationError("card number must contain only digits")
	}

	expMonth, expYear, err := parseExpiry(c.Expiry)
	if err != nil {
		return Result{}, err
	}

	now := v.now()
	curMonth := int(now.Month())
	curYear := now.Year() % 100

	return Result{
		MaskedRef: number[len(number)-4:],
		IsExpired: expYear < curYear || (expYear == curYear && expMonth < curMonth),
	}, nil
}

func parseExpiry(expiry string) (month, year int, err error) {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return 0, 0, apperrors.NewValidationError("expiry must be in MM/YY format")
	}
	month, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	return month, year, nil
}
