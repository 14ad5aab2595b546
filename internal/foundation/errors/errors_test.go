package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "vitedoc.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "vitedoc.yaml", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.True(t, HasSeverity(err, SeverityFatal))
		assert.False(t, err.CanRetry())
		assert.True(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := FileSystemError("failed to write file").WithContext("path", "a.md").Build()
		wrapped := fmt.Errorf("stage render_groups: %w", inner)

		got, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Same(t, inner, got)
		assert.Equal(t, CategoryFileSystem, GetCategory(wrapped))
		assert.True(t, got.CanRetry())
	})
}

func TestErrorBuilder(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "failed to remove directory").
		Warning().
		WithContext("path", "/tmp/out").
		Build()

	assert.Equal(t, "[filesystem:warning] failed to remove directory: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, RetryNever, err.RetryStrategy())
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := RenderError("template failed").WithContext("file", "a.md").Build()
	derived := base.WithContext("module", "utils")

	_, ok := base.Context().Get("module")
	assert.False(t, ok)
	module, ok := derived.Context().GetString("module")
	require.True(t, ok)
	assert.Equal(t, "utils", module)
	file, _ := derived.Context().GetString("file")
	assert.Equal(t, "a.md", file)
}

func TestErrorContext_Merge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	b := ErrorContext{"y": 3}
	merged := a.Merge(b)
	assert.Equal(t, ErrorContext{"x": 1, "y": 3}, merged)
	assert.Equal(t, 2, a["y"])

	var nilCtx ErrorContext
	assert.Equal(t, b, nilCtx.Merge(b))
}
