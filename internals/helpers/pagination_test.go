package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveVia(t *testing.T, target string) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	p := resolveVia(t, "/?page=3&per_page=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset)

	// default + alias limit
	p = resolveVia(t, "/?limit=5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 5, p.PerPage)

	// nilai liar dinormalisasi
	p = resolveVia(t, "/?page=-2&per_page=9999")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage, "dibatasi maxPerPage")

	p = resolveVia(t, "/")
	assert.Equal(t, 20, p.PerPage)
	assert.Zero(t, p.Offset)
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(45, 2, 20)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = BuildPagination(0, 1, 20)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}
