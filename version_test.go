package bluecommit_test

import (
	"testing"

	"github.com/0xalexb/bluecommit"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", bluecommit.Version)
	require.Equal(t, "none", bluecommit.Commit)
	require.Equal(t, "unknown", bluecommit.CompiledAt)
	require.Contains(t, bluecommit.VersionString(), "bluecommit dev (commit none, built unknown, go")
}
