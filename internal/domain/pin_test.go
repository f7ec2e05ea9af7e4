package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"beexpress/internal/domain"
)

func TestGeneratePin_FourDigits(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^\d{4}$`)
	for i := 0; i < 100; i++ {
		pin, err := domain.GeneratePin()
		require.NoError(t, err)
		require.Regexp(t, re, pin)
	}
}

func TestPinEquals(t *testing.T) {
	t.Parallel()

	require.True(t, domain.PinEquals("0420", "0420"))
	require.False(t, domain.PinEquals("0420", "4200"))
	require.False(t, domain.PinEquals("", "0420"))
	require.False(t, domain.PinEquals("042", "0420"))
}
