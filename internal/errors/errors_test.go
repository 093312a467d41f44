package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathedit/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_elevated",
			code:    errors.ErrNotElevated,
			message: "administrator required",
			wantStr: "[NOT_ELEVATED] administrator required",
		},
		{
			name:    "move_filtered",
			code:    errors.ErrMoveFiltered,
			message: "clear the filter",
			wantStr: "[MOVE_FILTERED] clear the filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("Access is denied.")
	err := errors.Wrap(cause, errors.ErrRegistryOpen, "open System PATH key")

	require.NotNil(t, err)
	assert.Equal(t, "[REGISTRY_OPEN] open System PATH key: Access is denied.", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrRegistryOpen, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrRegistryWrite, "")))

	assert.Nil(t, errors.Wrap(nil, errors.ErrRegistryOpen, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrRegistryOpen, "nothing %d", 1))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrLaunch, "relaunch failed").WithDetail("status", 5)

	v, ok := err.Detail("status")
	require.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = err.Detail("missing")
	assert.False(t, ok)
}

func TestGetCode(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("boom"), errors.ErrRegistryWrite, "set value")
	outer := stderrors.Join(stderrors.New("context"), wrapped)

	assert.Equal(t, errors.ErrRegistryWrite, errors.GetCode(wrapped))
	assert.Equal(t, errors.ErrRegistryWrite, errors.GetCode(outer))
	assert.Equal(t, errors.ErrUnknown, errors.GetCode(stderrors.New("plain")))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrRegistryWrite))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "set value: boom",
		errors.Message(errors.Wrap(stderrors.New("boom"), errors.ErrRegistryWrite, "set value")))
	assert.Equal(t, "bare", errors.Message(errors.New(errors.ErrUnknown, "bare")))
	assert.Equal(t, "plain", errors.Message(stderrors.New("plain")))
}
