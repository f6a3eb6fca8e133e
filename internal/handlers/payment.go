package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
	"github.com/example/aegislife/internal/utils"
)

// PaymentHandler manages premium payments and the payment ledger.
type PaymentHandler struct {
	db     *gorm.DB
	stripe *services.StripeService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(db *gorm.DB, stripe *services.StripeService) *PaymentHandler {
	return &PaymentHandler{db: db, stripe: stripe}
}

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

// CreatePaymentIntent registers a card payment with the processor and hands
// the client secret back to the browser.
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req paymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
	}

	pi, err := h.stripe.CreatePaymentIntent(req.Price)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "payment processor unavailable")
	}

	return c.JSON(fiber.Map{"clientSecret": pi.ClientSecret})
}

type createPaymentRequest struct {
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
	ApplicationID string  `json:"applicationId"`
	PolicyTitle   string  `json:"policyTitle"`
}

// CreatePayment appends a ledger record after the processor confirmed the
// charge. Replays of the same transaction id return the existing record.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		req.Email = email
	}
	if req.Email != email {
		return fiber.NewError(fiber.StatusForbidden, "payments may only be recorded for your own account")
	}
	if req.TransactionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "transaction id is required")
	}
	if req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
	}

	var existing models.Payment
	if err := h.db.Where("transaction_id = ?", req.TransactionID).First(&existing).Error; err == nil {
		return c.JSON(fiber.Map{"success": true, "data": existing})
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	payment := models.Payment{
		Email:         req.Email,
		Amount:        req.Price,
		Currency:      "usd",
		TransactionID: req.TransactionID,
		ReceiptNumber: ulid.Make().String(),
		PolicyTitle:   req.PolicyTitle,
		Status:        "paid",
		PaidAt:        time.Now(),
	}

	if req.ApplicationID != "" {
		if id, err := uuid.Parse(req.ApplicationID); err == nil {
			payment.ApplicationID = &id
		}
	}

	if err := h.db.Create(&payment).Error; err != nil {
		return err
	}

	if payment.ApplicationID != nil {
		if err := h.db.Model(&models.Application{}).
			Where("id = ? AND applicant_email = ?", *payment.ApplicationID, email).
			Update("premium_paid", true).Error; err != nil {
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

// ListPayments returns the full transaction ledger for admins.
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Payment{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var payments []models.Payment
	if err := query.Order("paid_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&payments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListByEmail returns the caller's own payment history.
func (h *PaymentHandler) ListByEmail(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if c.Params("email") != email {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var payments []models.Payment
	if err := h.db.Where("email = ?", email).
		Order("paid_at desc").
		Find(&payments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}

// Webhook records confirmed charges reported by the processor. The Stripe
// signature replaces bearer auth on this route.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	event, err := h.stripe.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid webhook signature")
	}

	if event.Type == "payment_intent.succeeded" {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid event payload")
		}

		var existing models.Payment
		err := h.db.Where("transaction_id = ?", pi.ID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			payment := models.Payment{
				Email:         pi.ReceiptEmail,
				Amount:        float64(pi.Amount) / 100,
				Currency:      string(pi.Currency),
				TransactionID: pi.ID,
				ReceiptNumber: ulid.Make().String(),
				Status:        "paid",
				PaidAt:        time.Now(),
			}
			if err := h.db.Create(&payment).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"received": true})
}
