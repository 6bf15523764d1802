package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasNoColorEnv(t *testing.T) {
	old, had := os.LookupEnv("NO_COLOR")
	defer func() {
		if had {
			os.Setenv("NO_COLOR", old)
		} else {
			os.Unsetenv("NO_COLOR")
		}
	}()

	os.Unsetenv("NO_COLOR")
	require.False(t, HasNoColorEnv())

	os.Setenv("NO_COLOR", "1")
	require.True(t, HasNoColorEnv())
}

func TestNoColorsIsEmpty(t *testing.T) {
	require.Equal(t, Colors{}, NoColors())
}
