package main

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommandsAreFullyRegistered(t *testing.T) {
	for name, cmd := range commands() {
		require.Equal(t, name, cmd.name)
		require.NotEmpty(t, cmd.description, "command %q has no description", name)
		require.NotNil(t, cmd.run, "command %q has no run function", name)
	}
}

func TestPrintUsageListsEveryCommand(t *testing.T) {
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stderr = oldStderr
	}()

	os.Stderr = w
	require.NoError(t, printUsage())
	require.NoError(t, w.Close())
	os.Stderr = oldStderr

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	for name := range commands() {
		require.Contains(t, outStr, name)
	}
}

func TestCreateStoreRequiresFlags(t *testing.T) {
	ctx := &commandContext{Ctx: t.Context(), Logger: testLogger()}
	err := runCreateStore(ctx, []string{"-slug", "acme"})
	require.ErrorContains(t, err, "create-store requires")
}

func TestGrantRoleRejectsUnknownRole(t *testing.T) {
	ctx := &commandContext{Ctx: t.Context(), Logger: testLogger()}
	err := runGrantRole(ctx, []string{"-user", "u1", "-role", "wizard"})
	require.ErrorContains(t, err, `unknown role "wizard"`)
}
