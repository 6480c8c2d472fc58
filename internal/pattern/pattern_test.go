package pattern_test

import (
	"math"
	"testing"

	"comicsort/internal/errors"
	"comicsort/internal/pattern"
	"comicsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileWithoutPlaceholder(t *testing.T) {
	for _, tmpl := range []string{`comic_\d+\.jpg`, `abc`, `\d{10}-.*\.png`} {
		t.Run(tmpl, func(t *testing.T) {
			cp, err := pattern.Compile(tmpl)
			require.NoError(t, err)
			assert.Equal(t, tmpl, cp.Matching)
			assert.Equal(t, tmpl, cp.Body)
			assert.False(t, cp.HasPlaceholder)
		})
	}
}

func TestCompileWithPlaceholder(t *testing.T) {
	tests := []struct {
		template string
		matching string
		body     string
	}{
		{"a<b>c", "abc", "b"},
		{`comic_<\d+>\.jpg`, `comic_\d+\.jpg`, `\d+`},
		{`<\d{10}-.*>`, `\d{10}-.*`, `\d{10}-.*`},
		{`prefix_<.*\.png>`, `prefix_.*\.png`, `.*\.png`},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			cp, err := pattern.Compile(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.matching, cp.Matching)
			assert.Equal(t, tt.body, cp.Body)
			assert.True(t, cp.HasPlaceholder)
		})
	}
}

func TestCompileMatchIsAnchoredAtStart(t *testing.T) {
	cp, err := pattern.Compile(`comic_<\d+>\.jpg`)
	require.NoError(t, err)

	assert.True(t, cp.Match.MatchString("comic_007.jpg"))
	assert.True(t, cp.Match.MatchString("comic_007.jpg.bak"), "only the start is anchored")
	assert.False(t, cp.Match.MatchString("my_comic_007.jpg"))
	assert.False(t, cp.Match.MatchString("comic_abc.jpg"))
}

func TestCompileRejects(t *testing.T) {
	tests := map[string]string{
		"two placeholders":  "<a>_<b>",
		"empty placeholder": "comic_<>.jpg",
		"bad regex":         "comic_(<\\d+>",
		"bad body regex":    "comic_<[0-9>.jpg",
		"empty template":    "",
	}

	for name, tmpl := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pattern.Compile(tmpl)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err), "got %v", err)
		})
	}
}

func TestExtract(t *testing.T) {
	cp, err := pattern.Compile(`comic_<\d+>\.jpg`)
	require.NoError(t, err)

	got, err := pattern.Extract(cp, "comic_007.jpg")
	require.NoError(t, err)
	assert.Equal(t, "007", got)

	whole, err := pattern.Compile(`comic_\d+\.jpg`)
	require.NoError(t, err)
	got, err = pattern.Extract(whole, "comic_007.jpg")
	require.NoError(t, err)
	assert.Equal(t, "comic_007.jpg", got)

	_, err = pattern.Extract(cp, "no digits here")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.PatternMismatch))
}

func TestCompileDir(t *testing.T) {
	dt, err := pattern.CompileDir("/comics/Daily")
	require.NoError(t, err)
	assert.Equal(t, "/comics/Daily", dt.Path)
	assert.Nil(t, dt.Slice)
	assert.Empty(t, dt.Placeholder)

	dt, err = pattern.CompileDir("/comics/Daily/<0:4>")
	require.NoError(t, err)
	assert.Equal(t, "<0:4>", dt.Placeholder)
	require.NotNil(t, dt.Slice)
	assert.Equal(t, types.Slice{Start: 0, Length: 4}, *dt.Slice)
}

func TestCompileDirRejectsMalformedSlice(t *testing.T) {
	for _, path := range []string{
		"/comics/<5>",
		"/comics/<a:b>",
		"/comics/<1:2:3>",
		"/comics/<-1:2>",
		"/comics/<1:0>",
		"/comics/<0:4>/<4:2>",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := pattern.CompileDir(path)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))
		})
	}
}

func TestCut(t *testing.T) {
	got, err := pattern.Cut(types.Slice{Start: 0, Length: 4}, "2023-11-14.jpg")
	require.NoError(t, err)
	assert.Equal(t, "2023", got)

	got, err = pattern.Cut(types.Slice{Start: 1, Length: 2}, "äöü.jpg")
	require.NoError(t, err)
	assert.Equal(t, "öü", got)

	for _, s := range []types.Slice{
		{Start: 3, Length: 10},
		{Start: 8, Length: 1},
		{Start: math.MaxInt, Length: 1},
		{Start: 1, Length: math.MaxInt},
	} {
		require.NotPanics(t, func() {
			_, err = pattern.Cut(s, "abc.jpg")
		})
		require.Error(t, err, "%d:%d", s.Start, s.Length)
		assert.True(t, errors.IsKind(err, errors.PatternMismatch))
	}
}

func TestCompileSkipsRegexGroupNames(t *testing.T) {
	cp, err := pattern.Compile(`comic_(?P<num>\d+)\.jpg`)
	require.NoError(t, err)
	assert.False(t, cp.HasPlaceholder)
	assert.True(t, cp.Match.MatchString("comic_007.jpg"))

	cp, err = pattern.Compile(`(?P<date>\d{8})_<\d+>\.jpg`)
	require.NoError(t, err)
	require.True(t, cp.HasPlaceholder)
	assert.Equal(t, `\d+`, cp.Body)
	assert.Equal(t, `(?P<date>\d{8})_\d+\.jpg`, cp.Matching)

	got, err := pattern.Extract(cp, "20231114_42.jpg")
	require.NoError(t, err)
	assert.Equal(t, "20231114", got)

	cp, err = pattern.Compile(`comic_(?<num>\d+)\.jpg`)
	require.NoError(t, err)
	assert.False(t, cp.HasPlaceholder)
}
