package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	require.NoError(t, Setup("debug"))
	require.NoError(t, Setup(""))
	require.Error(t, Setup("loud"))
}
