package card

import (
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func march2024() time.Time {
	return time.Date(2024, time.March, 17, 10, 0, 0, 0, time.UTC)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	v := NewVerifierAt(march2024)

	cases := []struct {
		expiry  string
		expired bool
	}{
		{"03/24", false},
		{"02/24", true},
		{"03/25", false},
		{"12/23", true},
		{"01/25", false},
		{"04/24", false},
	}

	for _, tc := range cases {
		t.Run(tc.expiry, func(t *testing.T) {
			res, err := v.Verify(Card{Number: "4242424242424242", HolderName: "Jane Doe", Expiry: tc.expiry, CSV: "123"})
			require.NoError(t, err)
			assert.Equal(t, tc.expired, res.IsExpired)
		})
	}
}

func TestVerifyComparesNumerically(t *testing.T) {
	// "10/24" sorts before "9/24"-style strings lexically; numeric comparison must win.
	v := NewVerifierAt(func() time.Time { return time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC) })

	res, err := v.Verify(Card{Number: "4242424242424242", Expiry: "10/24"})
	require.NoError(t, err)
	assert.False(t, res.IsExpired)

	res, err = v.Verify(Card{Number: "4242424242424242", Expiry: "08/24"})
	require.NoError(t, err)
	assert.True(t, res.IsExpired)
}

func TestVerifyMasksToLastFour(t *testing.T) {
	v := NewVerifierAt(march2024)

	res, err := v.Verify(Card{Number: "4111 1111 1111 9876", Expiry: "12/30"})
	require.NoError(t, err)
	assert.Equal(t, "9876", res.MaskedRef)
}

func TestVerifyMalformedInput(t *testing.T) {
	v := NewVerifierAt(march2024)

	for _, c := range []Card{
		{Number: "4242abcd42424242", Expiry: "12/30"},
		{Number: "", Expiry: "12/30"},
		{Number: "4242424242424242", Expiry: "13/30"},
		{Number: "4242424242424242", Expiry: "1/30"},
		{Number: "4242424242424242", Expiry: "2030-12"},
	} {
		_, err := v.Verify(c)
		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr, "card %+v", c)
	}
}
