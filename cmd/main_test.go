package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	epicreport "github.com/ethereum-optimism/infra/epic-report"
	"github.com/ethereum-optimism/infra/epic-report/exitcodes"
	"github.com/ethereum-optimism/infra/epic-report/flags"
	"github.com/ethereum-optimism/infra/epic-report/types"
)

// captureExit replaces the cli exiter for the duration of the test.
func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	origExiter, origWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = &bytes.Buffer{}
	t.Cleanup(func() {
		cli.OsExiter, cli.ErrWriter = origExiter, origWriter
	})
	return &code
}

func TestExitErrHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "data load error",
			err:  fmt.Errorf("failed to start: %w", types.NewDataLoadError("results.csv", errors.New("missing header row"))),
			want: exitcodes.DataLoadErr,
		},
		{
			name: "export error",
			err:  errors.Join(types.NewExportError("status pie", "pie.png", errors.New("permission denied"))),
			want: exitcodes.RuntimeErr,
		},
		{
			name: "runtime error",
			err:  epicreport.NewRuntimeError(errors.New("failed to create config")),
			want: exitcodes.RuntimeErr,
		},
		{
			name: "explicit exit coder",
			err:  cli.Exit("custom", 3),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := captureExit(t)
			exitErrHandler(nil, tt.err)
			assert.Equal(t, tt.want, *code)
		})
	}
}

func TestExitErrHandlerNil(t *testing.T) {
	code := captureExit(t)
	exitErrHandler(nil, nil)
	assert.Equal(t, -1, *code)
}

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, "epic-report", app.Name)
	require.NotNil(t, app.Action)
	require.NotNil(t, app.ExitErrHandler)

	names := make(map[string]bool)
	for _, f := range app.Flags {
		names[f.Names()[0]] = true
	}
	for _, f := range flags.Flags {
		assert.True(t, names[f.Names()[0]], "missing flag %s", f.Names()[0])
	}
}
