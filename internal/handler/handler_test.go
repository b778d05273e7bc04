package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs-lzh/movie-catalog/internal/media"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		param string
		want  uint
		ok    bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Params = gin.Params{{Key: "id", Value: tt.param}}

			got, ok := parseID(ctx)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatYear(t *testing.T) {
	year := 1984
	assert.Equal(t, "1984", formatYear(&year))
	assert.Empty(t, formatYear(nil))
}

func TestParseTemplates(t *testing.T) {
	tmpl, err := ParseTemplates(nil, media.NewStorage(t.TempDir(), "/media"))
	require.NoError(t, err)

	for _, name := range []string{listTemplate, detailTemplate, notFoundTemplate, errorTemplate} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
	for _, partial := range []string{"header", "footer", "sidebar", "movie_card"} {
		assert.NotNil(t, tmpl.Lookup(partial), partial)
	}
}
