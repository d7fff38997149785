package params

import (
	"net/http/httptest"
	"testing"

	"marketplace-api/core/constants"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) QueryParams {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor(t, "")
	require.Equal(t, constants.DefaultPageNumber, p.PageNumber)
	require.Equal(t, constants.DefaultPageSize, p.PageSize)
	require.Empty(t, p.Search)
}

func TestFromContextParsesValues(t *testing.T) {
	p := paramsFor(t, "page=3&page_size=50&search=bread")
	require.Equal(t, 3, p.PageNumber)
	require.Equal(t, 50, p.PageSize)
	require.Equal(t, "bread", p.Search)
}

func TestFromContextClampsPageSize(t *testing.T) {
	p := paramsFor(t, "page_size=5000")
	require.Equal(t, constants.MaxPageSize, p.PageSize)
}

func TestFromContextIgnoresGarbage(t *testing.T) {
	p := paramsFor(t, "page=-2&page_size=abc")
	require.Equal(t, constants.DefaultPageNumber, p.PageNumber)
	require.Equal(t, constants.DefaultPageSize, p.PageSize)
}

func TestNormalize(t *testing.T) {
	p := QueryParams{PageNumber: 0, PageSize: 0}.Normalize()
	require.Equal(t, constants.DefaultPageNumber, p.PageNumber)
	require.Equal(t, constants.DefaultPageSize, p.PageSize)

	p = QueryParams{PageNumber: 2, PageSize: 1000}.Normalize()
	require.Equal(t, 2, p.PageNumber)
	require.Equal(t, constants.MaxPageSize, p.PageSize)
}
