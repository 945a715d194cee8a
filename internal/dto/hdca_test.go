package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowQuery_KeyList(t *testing.T) {
	assert.Nil(t, ShowQuery{}.KeyList())
	assert.Equal(t, []string{"id", "tags", "name"}, ShowQuery{Keys: "id, tags,name"}.KeyList())
}

func TestParseAndValidate(t *testing.T) {
	app := fiber.New()
	var got SetTagsRequest
	app.Put("/tags", func(c *fiber.Ctx) error {
		if err := ParseAndValidate(c, &got); err != nil {
			return WriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "valid", body: `{"tags":["group:a","#sample"]}`, status: fiber.StatusNoContent},
		{name: "empty list", body: `{"tags":[]}`, status: fiber.StatusNoContent},
		{name: "invalid tag", body: `{"tags":["group:"]}`, status: fiber.StatusBadRequest},
		{name: "malformed json", body: `{"tags":`, status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/tags", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestParseQueryAndValidate(t *testing.T) {
	app := fiber.New()
	app.Get("/show", func(c *fiber.Ctx) error {
		var q ShowQuery
		if err := ParseQueryAndValidate(c, &q); err != nil {
			return WriteError(c, err)
		}
		return c.JSON(fiber.Map{"view": q.View, "keys": q.KeyList()})
	})
	app.Delete("/item", func(c *fiber.Ctx) error {
		var q DeleteQuery
		if err := ParseQueryAndValidate(c, &q); err != nil {
			return WriteError(c, err)
		}
		return c.JSON(fiber.Map{"purge": q.Purge})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/show?view=detailed&keys=tags,annotation", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/show?keys=Bad-Key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/item?purge=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/item?purge=maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
