package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestEstimate(t *testing.T) {
	app := fiber.New()
	handler := NewQuoteHandler(nil)
	app.Post("/quote", handler.Estimate)

	t.Run("returns the estimated premium", func(t *testing.T) {
		resp := postJSON(t, app, "/quote", fiber.Map{
			"age":            35,
			"gender":         "male",
			"coverageAmount": 500000,
			"isSmoker":       "no",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success          bool    `json:"success"`
			EstimatedPremium float64 `json:"estimatedPremium"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.InDelta(t, 412.50, body.EstimatedPremium, 0.001)
	})

	t.Run("smoker surcharge", func(t *testing.T) {
		resp := postJSON(t, app, "/quote", fiber.Map{
			"age":            35,
			"gender":         "male",
			"coverageAmount": 500000,
			"isSmoker":       "yes",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			EstimatedPremium float64 `json:"estimatedPremium"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.InDelta(t, 512.50, body.EstimatedPremium, 0.001)
	})

	t.Run("age out of range", func(t *testing.T) {
		resp := postJSON(t, app, "/quote", fiber.Map{
			"age":            75,
			"gender":         "female",
			"coverageAmount": 500000,
			"isSmoker":       "no",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed policy id", func(t *testing.T) {
		resp := postJSON(t, app, "/quote", fiber.Map{
			"age":            35,
			"gender":         "male",
			"coverageAmount": 500000,
			"isSmoker":       "no",
			"policyId":       "not-a-uuid",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
