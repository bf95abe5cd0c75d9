package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/internal/types"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.SetErr(buf)
	return cmd, buf
}

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CLIError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewCLIError(ExitError, "something went wrong"),
			expected: "something went wrong",
		},
		{
			name:     "error with cause",
			err:      WrapError(ExitError, "operation failed", errors.New("underlying error")),
			expected: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(ExitError, "wrapper", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to reach the cause")
	}
	if NewCLIError(ExitError, "no cause").Unwrap() != nil {
		t.Error("expected Unwrap to return nil for error without cause")
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{name: "nil", err: nil, wantCode: ExitSuccess},
		{name: "cancelled", err: fmt.Errorf("run: %w", context.Canceled), wantCode: ExitCancelled, wantOut: "Operation cancelled"},
		{name: "timeout", err: context.DeadlineExceeded, wantCode: ExitTimeout, wantOut: "Operation timed out"},
		{name: "cli error", err: NewCLIError(ExitConfigError, "bad config"), wantCode: ExitConfigError, wantOut: "Error: bad config"},
		{name: "plain error", err: errors.New("boom"), wantCode: ExitError, wantOut: "Error: boom"},
		{
			name:     "config code",
			err:      types.NewError(types.CONFIG_VALIDATION_FAILED, "invalid"),
			wantCode: ExitConfigError,
		},
		{
			name:     "graph code",
			err:      types.NewRetryableError("GRAPH_CONNECTION_FAILED", "unreachable"),
			wantCode: ExitDatabaseError,
			wantOut:  "retrying the command can succeed",
		},
		{
			name:     "graph invalid config",
			err:      types.NewError("GRAPH_INVALID_CONFIG", "uri is required"),
			wantCode: ExitConfigError,
		},
		{
			name:     "store argument",
			err:      types.NewError("STORE_INVALID_ARGUMENT", "name is empty"),
			wantCode: ExitError,
		},
		{
			name:     "generic cli error over coded cause",
			err:      WrapError(ExitError, "failed to connect", types.NewError("GRAPH_CONNECTION_FAILED", "x")),
			wantCode: ExitDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCmd()
			code := HandleError(cmd, tt.err)
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if tt.wantOut != "" && !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("expected output to contain %q, got %q", tt.wantOut, buf.String())
			}
		})
	}
}

func TestHandleError_VerboseShowsCause(t *testing.T) {
	cmd, buf := newTestCmd()
	if err := cmd.Flags().Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}

	HandleError(cmd, WrapError(ExitError, "query failed", errors.New("socket closed")))
	if !strings.Contains(buf.String(), "Cause: socket closed") {
		t.Errorf("expected cause in verbose output, got %q", buf.String())
	}
}
