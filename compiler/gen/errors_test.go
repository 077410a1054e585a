package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError([]string{"shop", "Order"}, "empty path", cause)

		assert.Contains(t, err.Error(), "teogen: schema error")
		assert.Contains(t, err.Error(), "at shop.Order")
		assert.Contains(t, err.Error(), "empty path")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError(nil, "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.NotContains(t, err.Error(), " at ")
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError(nil, "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsSchemaError(fmt.Errorf("wrap: %w", err)))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "must be positive")

		assert.Contains(t, err.Error(), "teogen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Targets", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Targets")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Targets", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestUnresolvableTypeError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &UnresolvableTypeError{Target: "dart", Model: "User", Field: "span", Type: "(Int, Int)"}

		assert.Contains(t, err.Error(), "teogen: unresolvable type (Int, Int)")
		assert.Contains(t, err.Error(), "for target dart")
		assert.Contains(t, err.Error(), "on User.span")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := NewUnresolvableTypeError("", "Undetermined")
		assert.Equal(t, "teogen: unresolvable type Undetermined", err.Error())
	})

	t.Run("Is matches ErrUnresolvableType", func(t *testing.T) {
		err := NewUnresolvableTypeError("ts", "Regex")
		assert.True(t, errors.Is(err, ErrUnresolvableType))
		assert.True(t, IsUnresolvableTypeError(fmt.Errorf("wrap: %w", err)))
		assert.False(t, IsUnresolvableTypeError(errors.New("other")))
	})
}

func TestMalformedReferenceError(t *testing.T) {
	err := NewMalformedReferenceError("CreateInputWithout", "User", "missing without")

	assert.Equal(t, "teogen: malformed reference CreateInputWithout of User: missing without", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedReference))
	assert.True(t, IsMalformedReferenceError(err))
	assert.False(t, IsMalformedReferenceError(errors.New("other")))
}

func TestAmbiguousPathError(t *testing.T) {
	err := NewAmbiguousPathError([]string{"a"}, []string{"a", "b"}, "alias teo is taken")

	assert.Contains(t, err.Error(), `"a" from "a.b"`)
	assert.Contains(t, err.Error(), "alias teo is taken")
	assert.True(t, errors.Is(err, ErrAmbiguousPath))
	assert.True(t, IsAmbiguousPathError(err))
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("write failed")
		err := NewGenerationError("ts", "index.d.ts", "cannot write file", cause)

		assert.Contains(t, err.Error(), "teogen: generation error")
		assert.Contains(t, err.Error(), "in phase ts")
		assert.Contains(t, err.Error(), "(file: index.d.ts)")
		assert.Contains(t, err.Error(), "cannot write file")
		assert.Contains(t, err.Error(), "write failed")
	})

	t.Run("Unwrap keeps the cause chain", func(t *testing.T) {
		cause := NewUnresolvableTypeError("dart", "Range<Int>")
		err := NewGenerationError("dart", "", "", cause)

		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, errors.Is(err, ErrUnresolvableType))
		assert.True(t, IsGenerationError(err))
		assert.True(t, IsUnresolvableTypeError(err))
	})
}
