package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewUserError("could not open document", ErrPasswordRequired)
		assert.Contains(t, err.Error(), "could not open document")
		assert.ErrorIs(t, err, ErrPasswordRequired)

		var userErr *UserError
		require.ErrorAs(t, err, &userErr)
		assert.Equal(t, "could not open document", userErr.UserMessage)
	})

	t.Run("message only", func(t *testing.T) {
		err := NewUserError("nothing to do", nil)
		assert.Equal(t, "nothing to do", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
