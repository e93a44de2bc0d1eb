package log

import (
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestForRequestBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		l := ForRequest("req-1")
		l.Info().Msg("ignored")

		plain := ForRequest("")
		plain.Info().Msg("ignored")
	})
}
