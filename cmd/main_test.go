package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitRoomsOnSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", filepath.Join(t.TempDir(), "rooms.db"))

	out, err := runCmd(t, "init-rooms")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized 9 rooms")

	_, err = runCmd(t, "init-rooms")
	assert.ErrorContains(t, err, "rooms already initialized")

	out, err = runCmd(t, "init-rooms", "--reset", "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized 3 rooms")
}

func TestUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := runCmd(t, "init-rooms")
	assert.ErrorContains(t, err, `unknown DB_DRIVER "mongo"`)
}
