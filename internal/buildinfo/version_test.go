package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCompatibleAcceptsSameVersion(t *testing.T) {
	require.NoError(t, CheckCompatible("1.0.0"))
}

func TestCheckCompatibleRejectsDifferentMajor(t *testing.T) {
	require.Error(t, CheckCompatible("2.0.0"))
}

func TestCheckCompatibleRejectsNewerMinor(t *testing.T) {
	require.Error(t, CheckCompatible("1.5.0"))
}
