package devenv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	path, err := ResolvePath("data/ufc_event_details.csv")
	require.NoError(t, err)
	require.Equal(t, "data/ufc_event_details.csv", path)

	root, err := GetWorkspaceRoot()
	require.NoError(t, err)

	path, err = ResolvePath(filepath.Join("<dev_state>", "resty", "ufcstats"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "dev", ".state", "resty", "ufcstats"), path)
}

func TestIsWorkspaceRoot(t *testing.T) {
	root, err := GetWorkspaceRoot()
	require.NoError(t, err)
	require.True(t, isWorkspaceRoot(root))
	require.False(t, isWorkspaceRoot(filepath.Join(root, "dev")))
	require.False(t, isWorkspaceRoot(t.TempDir()))
}
