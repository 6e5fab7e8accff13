package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	ve := &ValidationError{}
	ve.add("name", "required")
	ve.add("email", "malformed")

	assert.Equal(t, "validation failed: name: required; email: malformed", ve.Error())
	assert.True(t, IsValidation(ve))
	assert.False(t, IsNotFound(ve))
}

func TestOrNil(t *testing.T) {
	ve := &ValidationError{}
	assert.NoError(t, ve.orNil())

	ve.add("x", "bad")
	assert.Error(t, ve.orNil())
}

func TestErrorHelpersUnwrap(t *testing.T) {
	nf := &NotFoundError{Kind: "client", ID: "abc"}
	wrapped := fmt.Errorf("loading board: %w", nf)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInvariant(wrapped))
	assert.Equal(t, "client not found: abc", nf.Error())

	iv := &InvariantViolation{Op: "MoveClient", Detail: "client not in source stage"}
	assert.True(t, IsInvariant(iv))
	assert.Equal(t, "invariant violated in MoveClient: client not in source stage", iv.Error())
}
