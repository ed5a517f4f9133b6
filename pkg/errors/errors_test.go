package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("fragments.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "fragments.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "fragments.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("theme", "must be one of cellcolabs cellcolabsclinical", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "theme", validationErr.Field)
	require.Contains(t, err.Error(), "validation error: theme")
}

func TestUnknownPlaceholderMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("validate: %w", NewUnknownPlaceholderError("footer", "brand_txt"))

	require.ErrorIs(t, err, ErrUnknownPlaceholder)
	require.NotErrorIs(t, err, ErrRenderFailed)
	require.Equal(t, "footer", ComponentID(err))
	require.Contains(t, err.Error(), `"brand_txt"`)
}

func TestRenderErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := NewRenderError("hero-block", cause)

	require.ErrorIs(t, err, ErrRenderFailed)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "hero-block", ComponentID(err))
}

func TestWriteErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("read-only file system")
	err := NewWriteError("out/button/v1/styles.css", cause)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	require.Equal(t, "out/button/v1/styles.css", writeErr.Path)
	require.ErrorIs(t, err, ErrWriteFailed)
	require.ErrorIs(t, err, cause)
}

func TestComponentErrorAttachesID(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewComponentError("button", nil))

	err := NewComponentError("button", NewWriteError("x", stdErrors.New("disk full")))
	require.Equal(t, "button", ComponentID(err))
	require.ErrorIs(t, err, ErrWriteFailed)
	require.Empty(t, ComponentID(stdErrors.New("plain")))
}

func TestAttachComponentFillsUnknownPlaceholder(t *testing.T) {
	t.Parallel()

	err := AttachComponent(NewUnknownPlaceholderError("", "title"), "content-section")

	var unknownErr *UnknownPlaceholderError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "content-section", unknownErr.Component)

	wrapped := AttachComponent(stdErrors.New("bad default"), "button")
	require.Equal(t, "button", ComponentID(wrapped))

	already := NewRenderError("hero-block", stdErrors.New("x"))
	require.Same(t, already, AttachComponent(already, "other"))
	require.NoError(t, AttachComponent(nil, "button"))
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var renderErr *RenderError
	var writeErr *WriteError
	require.Empty(t, parseErr.Error())
	require.Nil(t, renderErr.Unwrap())
	require.Empty(t, writeErr.Error())
}
