package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/aegislife/internal/services"
)

func TestCreatePaymentIntent(t *testing.T) {
	app := fiber.New()
	// No secret key, so the processor path reports itself unconfigured.
	stripeSvc := services.NewStripeService("", "", zap.NewNop())
	handler := NewPaymentHandler(nil, stripeSvc)
	app.Post("/create-payment-intent", handler.CreatePaymentIntent)

	t.Run("rejects a non-positive price", func(t *testing.T) {
		resp := postJSON(t, app, "/create-payment-intent", fiber.Map{"price": 0})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		resp := postJSON(t, app, "/create-payment-intent", fiber.Map{"price": -10.5})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unconfigured processor reports bad gateway", func(t *testing.T) {
		resp := postJSON(t, app, "/create-payment-intent", fiber.Map{"price": 412.50})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := fiber.New()
	stripeSvc := services.NewStripeService("", "whsec_test", zap.NewNop())
	handler := NewPaymentHandler(nil, stripeSvc)
	app.Post("/payments/webhook", handler.Webhook)

	resp := postJSON(t, app, "/payments/webhook", fiber.Map{"type": "payment_intent.succeeded"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
