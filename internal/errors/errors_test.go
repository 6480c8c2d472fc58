package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
	assert.False(t, Is(New("other"), origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot create directory", "/srv/comics", DirectoryCreateFailed, nil)
	assert.Equal(t, "cannot create directory: /srv/comics", fileErr.Error())
	assert.Equal(t, "/srv/comics", fileErr.Path())
	assert.Equal(t, DirectoryCreateFailed, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot create directory", "/srv/comics", DirectoryCreateFailed, origErr)
	assert.Equal(t, "cannot create directory: /srv/comics: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))
	assert.True(t, IsPerFile(fileErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("malformed slice", "mappings[0].directory", InvalidConfig, nil)
	assert.Equal(t, "malformed slice: mappings[0].directory", configErr.Error())
	assert.Equal(t, "mappings[0].directory", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsPerFile(configErr))

	wrapped := fmt.Errorf("loading: %w", configErr)
	assert.True(t, IsInvalidConfig(wrapped))
	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))
	assert.False(t, errors.Is(wrapped, ErrConfigNotFound))

	assert.False(t, IsInvalidConfig(New("plain")))
}

func TestMappingError(t *testing.T) {
	cause := NewKind(SplitMismatch, "splitting %q on %q gave 1 part", "abc.jpg", "-")
	err := NewMappingError("derive name", "Daily", "abc.jpg", SplitMismatch, cause)

	assert.Equal(t, `derive name: Daily: abc.jpg: splitting "abc.jpg" on "-" gave 1 part`, err.Error())
	assert.Equal(t, "Daily", err.Mapping())
	assert.Equal(t, "abc.jpg", err.File())
	assert.True(t, IsKind(err, SplitMismatch))
	assert.True(t, IsPerFile(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, Unknown},
		{"plain", fmt.Errorf("boom"), Unknown},
		{"direct", NewKind(InvalidTimestamp, "bad"), InvalidTimestamp},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", NewKind(MoveFailed, "rename")), MoveFailed},
		{"unknown wrapper", Wrap(NewKind(PatternMismatch, "no match"), "ctx"), PatternMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pattern_mismatch", PatternMismatch.String())
	assert.Equal(t, "invalid_config", InvalidConfig.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
	assert.True(t, MoveFailed.PerFile())
	assert.False(t, ConfigNotFound.PerFile())
}
