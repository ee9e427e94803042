package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"required,max=5"`
	Size  string  `validate:"oneof=small medium"`
	Age   float64 `validate:"gte=0"`
	Email string  `validate:"omitempty,email"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "Max", Size: "small", Age: 1}))
}

func TestStruct_CollectsFields(t *testing.T) {
	err := Struct(sample{Name: "", Size: "huge", Age: -1, Email: "nope"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "size must be one of [small medium]")
	assert.Contains(t, err.Error(), "age must be >= 0")
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var(10, "min=1,max=50"))
	assert.Error(t, Var(51, "min=1,max=50"))
}
