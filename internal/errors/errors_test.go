package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewUserError("bad input", "try again")
		assert.Equal(t, "bad input", err.Error())
		assert.Equal(t, "try again", Suggestion(err))
	})

	t.Run("with field context", func(t *testing.T) {
		err := NewUserErrorWithField("amount", "abc", "Invalid amount", "numbers only")
		assert.Equal(t, "Invalid amount: 'abc'", err.Error())
		assert.Equal(t, "amount", err.Field)
	})
}

func TestSystemError(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewSystemErrorWithOp("save clients", "storage write failed", cause)

	assert.Equal(t, "storage write failed during save clients", err.Error())
	assert.ErrorIs(t, err, cause)

	var se *SystemError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "save clients", se.Op)
}

func TestFormat(t *testing.T) {
	t.Run("appends a hint for user errors", func(t *testing.T) {
		err := NewUserError("bad input", "try --help")
		assert.Equal(t, "bad input\n  hint: try --help", Format(err))
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		assert.Equal(t, "client not found", Format(ErrClientNotFound))
	})

	t.Run("nil is empty", func(t *testing.T) {
		assert.Equal(t, "", Format(nil))
	})
}
