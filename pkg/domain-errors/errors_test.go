package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("boom")

	t.Run("direct code", func(t *testing.T) {
		err := New(CodeNotFound, "family not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", Wrap(cause, CodeInternal, "failed to load family"))
		assert.True(t, HasCode(err, CodeInternal))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nested domain errors are searched", func(t *testing.T) {
		inner := New(CodeTimeout, "lock wait exceeded")
		outer := Wrap(inner, CodeInternal, "transaction failed")
		assert.True(t, HasCode(outer, CodeTimeout))
		assert.Equal(t, CodeInternal, CodeOf(outer))
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("untyped errors are internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(cause))
		assert.False(t, HasCode(cause, CodeInternal))
	})
}

func TestReasons(t *testing.T) {
	err := NewWithReason(CodeConflict, ReasonAlreadyLinked, "member is already linked")
	assert.True(t, HasReason(err, ReasonAlreadyLinked))
	assert.True(t, HasReason(fmt.Errorf("process claim: %w", err), ReasonAlreadyLinked))
	assert.False(t, HasReason(err, ReasonNotPending))
	assert.Equal(t, Reason(""), ReasonOf(New(CodeConflict, "plain")))
	assert.False(t, HasReason(New(CodeConflict, "plain"), ""))
	assert.Equal(t, "member is already linked", err.Error())
}
