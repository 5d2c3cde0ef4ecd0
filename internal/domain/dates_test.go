package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDateDefaultsAndFallbacks(t *testing.T) {
	now := time.Date(2023, time.June, 15, 10, 30, 0, 0, time.UTC)

	require.Equal(t, "2023-06-15", normalizeDateAt("", now), "empty input defaults to today")
	require.Equal(t, "2023-06-15", normalizeDateAt("not-a-date", now), "garbage is replaced, not rejected")
	require.Equal(t, "2023-06-15", normalizeDateAt("2023-02-30", now), "impossible calendar date is replaced")
	require.Equal(t, "2023-06-15", normalizeDateAt("15/06/2023", now), "wrong format is replaced")
}

func TestNormalizeDatePassesThroughCanonicalValues(t *testing.T) {
	now := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	require.Equal(t, "2023-01-15", normalizeDateAt("2023-01-15", now))
	require.Equal(t, "1999-12-31", normalizeDateAt("1999-12-31", now))
	require.Equal(t, "2024-02-29", normalizeDateAt("2024-02-29", now), "leap day is valid")
}

func TestNormalizeDateUsesUTCClock(t *testing.T) {
	got := NormalizeDate("")
	require.Equal(t, time.Now().UTC().Format("2006-01-02"), got)
}
