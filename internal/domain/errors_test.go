package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindMatching(t *testing.T) {
	err := Conflictf("application %d changed concurrently", 7)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestErrorKindOf_Wrapped(t *testing.T) {
	inner := Unauthorizedf("Not a member of the hiring company")
	wrapped := fmt.Errorf("handler: %w", inner)
	assert.Equal(t, KindUnauthorized, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrUnauthorized))
}

func TestErrorKindOf_Foreign(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("driver: bad connection")))
}

func TestWrapInternalf(t *testing.T) {
	t.Run("KeepsExistingKind", func(t *testing.T) {
		conflict := Conflictf("team 10 has already applied to opportunity 20")
		err := WrapInternalf(conflict, "failed to create application")
		assert.Equal(t, KindConflict, KindOf(err))
		assert.Equal(t, conflict.Error(), err.Error())
	})

	t.Run("WrapsForeignErrors", func(t *testing.T) {
		err := WrapInternalf(errors.New("driver: bad connection"), "failed to create application")
		assert.Equal(t, KindInternal, KindOf(err))
		assert.Contains(t, err.Error(), "failed to create application")
	})
}

func TestInternalf_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internalf(cause, "failed to load application")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "failed to load application")
	assert.Contains(t, err.Error(), "connection refused")
}
