package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/utils"
)

// ApplicationHandler manages the application and claim lifecycle.
type ApplicationHandler struct {
	db *gorm.DB
}

// NewApplicationHandler constructs an ApplicationHandler.
func NewApplicationHandler(db *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{db: db}
}

type applicationRequest struct {
	ApplicantName       string  `json:"applicantName"`
	ApplicantEmail      string  `json:"applicantEmail"`
	ApplicantAddress    string  `json:"applicantAddress"`
	NIDNumber           string  `json:"nidNumber"`
	PhoneNumber         string  `json:"phoneNumber"`
	DateOfBirth         string  `json:"dateOfBirth"`
	NomineeName         string  `json:"nomineeName"`
	NomineeRelationship string  `json:"nomineeRelationship"`
	NomineeContact      string  `json:"nomineeContact"`
	HealthInfo          string  `json:"healthInfo"`
	HealthDeclaration   bool    `json:"healthDeclaration"`
	TermsAccepted       bool    `json:"termsAccepted"`
	PolicyID            string  `json:"policyId"`
	PolicyTitle         string  `json:"policyTitle"`
	CoverageAmount      float64 `json:"coverageAmount"`
	EstimatedPremium    float64 `json:"estimatedPremium"`
}

var (
	nidPattern   = regexp.MustCompile(`^[0-9]{10,17}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s]+$`)
)

// wizardStep is one page of the application form. Required fields must be
// present and the guard must pass before the next step is reachable; Submit
// replays all guards server-side.
type wizardStep struct {
	name     string
	required []requiredField
	guard    func() error
}

type requiredField struct {
	name  string
	value string
}

func (r *applicationRequest) wizardSteps() []wizardStep {
	return []wizardStep{
		{
			name: "applicant",
			required: []requiredField{
				{"applicantName", r.ApplicantName},
				{"applicantEmail", r.ApplicantEmail},
				{"applicantAddress", r.ApplicantAddress},
				{"nidNumber", r.NIDNumber},
				{"phoneNumber", r.PhoneNumber},
				{"dateOfBirth", r.DateOfBirth},
			},
			guard: func() error {
				if !nidPattern.MatchString(r.NIDNumber) {
					return errors.New("nid number must be 10 to 17 digits")
				}
				if !phonePattern.MatchString(r.PhoneNumber) {
					return errors.New("phone number is invalid")
				}
				dob, err := time.Parse("2006-01-02", r.DateOfBirth)
				if err != nil {
					return errors.New("date of birth must be YYYY-MM-DD")
				}
				if ageAt(dob, time.Now()) < 18 {
					return errors.New("applicant must be at least 18 years old")
				}
				return nil
			},
		},
		{
			name: "nominee",
			required: []requiredField{
				{"nomineeName", r.NomineeName},
				{"nomineeRelationship", r.NomineeRelationship},
				{"nomineeContact", r.NomineeContact},
			},
			guard: func() error {
				if !phonePattern.MatchString(r.NomineeContact) {
					return errors.New("nominee contact number is invalid")
				}
				return nil
			},
		},
		{
			name: "disclosure",
			guard: func() error {
				if !r.HealthDeclaration {
					return errors.New("health declaration must be confirmed")
				}
				if !r.TermsAccepted {
					return errors.New("terms and conditions must be accepted")
				}
				return nil
			},
		},
	}
}

func validateApplication(r *applicationRequest) error {
	for _, step := range r.wizardSteps() {
		for _, field := range step.required {
			if strings.TrimSpace(field.value) == "" {
				return fmt.Errorf("%s: %s is required", step.name, field.name)
			}
		}
		if step.guard != nil {
			if err := step.guard(); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
		}
	}
	return nil
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	return age
}

// Submit creates a new pending application for the signed-in customer.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req applicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.ApplicantEmail == "" {
		req.ApplicantEmail = email
	}
	if req.ApplicantEmail != email {
		return fiber.NewError(fiber.StatusForbidden, "applications may only be submitted for your own account")
	}

	if err := validateApplication(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	app := models.Application{
		ApplicantName:       req.ApplicantName,
		ApplicantEmail:      req.ApplicantEmail,
		ApplicantAddress:    req.ApplicantAddress,
		NIDNumber:           req.NIDNumber,
		PhoneNumber:         req.PhoneNumber,
		DateOfBirth:         req.DateOfBirth,
		NomineeName:         req.NomineeName,
		NomineeRelationship: req.NomineeRelationship,
		NomineeContact:      req.NomineeContact,
		HealthInfo:          req.HealthInfo,
		HealthDeclaration:   req.HealthDeclaration,
		TermsAccepted:       req.TermsAccepted,
		PolicyTitle:         req.PolicyTitle,
		CoverageAmount:      req.CoverageAmount,
		EstimatedPremium:    req.EstimatedPremium,
		Status:              models.StatusPending,
		ClaimStatus:         models.ClaimNone,
		SubmittedAt:         time.Now(),
	}

	if req.PolicyID != "" {
		if id, err := uuid.Parse(req.PolicyID); err == nil {
			app.PolicyID = &id
		}
	}

	if err := h.db.Create(&app).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": app})
}

// ListAll returns every application for the admin review table.
func (h *ApplicationHandler) ListAll(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Application{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var apps []models.Application
	if err := query.Order("submitted_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&apps).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    apps,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListByCustomer returns the caller's own applications.
func (h *ApplicationHandler) ListByCustomer(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if c.Params("email") != email {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var apps []models.Application
	if err := h.db.Where("applicant_email = ?", email).
		Order("submitted_at desc").
		Find(&apps).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": apps})
}

// ListByAgent returns the applications assigned to an agent.
func (h *ApplicationHandler) ListByAgent(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	paramEmail := c.Params("email")
	role, _ := middleware.GetCurrentRole(c)
	if paramEmail != email && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var agent models.User
	if err := h.db.First(&agent, "email = ?", paramEmail).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "agent not found")
		}
		return err
	}

	var apps []models.Application
	if err := h.db.Where("agent_id = ?", agent.ID).
		Order("submitted_at desc").
		Find(&apps).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": apps})
}

type updateApplicationRequest struct {
	Status            string `json:"status"`
	RejectionFeedback string `json:"rejectionFeedback"`
	AgentID           string `json:"agentId"`
	AgentName         string `json:"agentName"`
}

// UpdateApplication applies an underwriting decision or an agent assignment.
// Admins act on any application; agents only on ones assigned to them.
func (h *ApplicationHandler) UpdateApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var app models.Application
	if err := h.db.First(&app, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return err
	}

	role, _ := middleware.GetCurrentRole(c)
	if role == models.RoleAgent {
		email, _ := middleware.GetCurrentEmail(c)
		var agent models.User
		if err := h.db.First(&agent, "email = ?", email).Error; err != nil {
			return err
		}
		if app.AgentID == nil || *app.AgentID != agent.ID {
			return fiber.NewError(fiber.StatusForbidden, "application is not assigned to you")
		}
	}

	if req.AgentID != "" {
		if role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "only admins assign agents")
		}

		agentID, err := uuid.Parse(req.AgentID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid agent id")
		}

		var agent models.User
		if err := h.db.First(&agent, "id = ? AND role = ?", agentID, models.RoleAgent).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "agent not found")
			}
			return err
		}

		name := req.AgentName
		if name == "" {
			name = agent.Name
		}
		if err := app.AssignAgent(agent.ID, name); err != nil {
			return transitionError(err)
		}
	}

	switch req.Status {
	case "":
		// Assignment-only update.
	case models.StatusApproved:
		if err := app.Approve(); err != nil {
			return transitionError(err)
		}
	case models.StatusRejected:
		if err := app.Reject(req.RejectionFeedback); err != nil {
			return transitionError(err)
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "status must be Approved or Rejected")
	}

	if err := h.db.Save(&app).Error; err != nil {
		return err
	}

	// An approval counts as a policy purchase for the popularity ranking.
	if req.Status == models.StatusApproved && app.PolicyID != nil {
		if err := h.db.Model(&models.Policy{}).
			Where("id = ?", *app.PolicyID).
			UpdateColumn("purchase_count", gorm.Expr("purchase_count + 1")).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": app})
}

type fileClaimRequest struct {
	ClaimDetails string `json:"claimDetails"`
	DocumentURL  string `json:"documentUrl"`
}

// FileClaim opens a claim against the caller's approved application.
func (h *ApplicationHandler) FileClaim(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req fileClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(strings.TrimSpace(req.ClaimDetails)) < 10 {
		return fiber.NewError(fiber.StatusBadRequest, "claim details must be at least 10 characters")
	}
	if req.DocumentURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "a supporting document is required")
	}

	var app models.Application
	if err := h.db.First(&app, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return err
	}

	if app.ApplicantEmail != email {
		return fiber.NewError(fiber.StatusForbidden, "claims may only be filed on your own applications")
	}

	if err := app.FileClaim(req.ClaimDetails, req.DocumentURL, time.Now()); err != nil {
		return transitionError(err)
	}

	if err := h.db.Save(&app).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": app})
}

// PendingClaims lists claims awaiting clearance.
func (h *ApplicationHandler) PendingClaims(c *fiber.Ctx) error {
	var apps []models.Application
	if err := h.db.Where("claim_status = ?", models.ClaimPending).
		Order("claim_filed_at asc").
		Find(&apps).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": apps})
}

// ApproveClaim settles a pending claim.
func (h *ApplicationHandler) ApproveClaim(c *fiber.Ctx) error {
	return h.clearClaim(c, func(app *models.Application, _ string) error {
		return app.ApproveClaim()
	})
}

type rejectClaimRequest struct {
	Feedback string `json:"feedback"`
}

// RejectClaim declines a pending claim with feedback.
func (h *ApplicationHandler) RejectClaim(c *fiber.Ctx) error {
	var req rejectClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	return h.clearClaim(c, func(app *models.Application, feedback string) error {
		return app.RejectClaim(feedback)
	}, req.Feedback)
}

func (h *ApplicationHandler) clearClaim(c *fiber.Ctx, transition func(*models.Application, string) error, feedback ...string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var app models.Application
	if err := h.db.First(&app, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return err
	}

	fb := ""
	if len(feedback) > 0 {
		fb = feedback[0]
	}
	if err := transition(&app, fb); err != nil {
		return transitionError(err)
	}

	if err := h.db.Save(&app).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": app})
}

// transitionError maps state-machine precondition failures onto HTTP codes.
func transitionError(err error) error {
	switch {
	case errors.Is(err, models.ErrFeedbackRequired):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotPending),
		errors.Is(err, models.ErrNotApproved),
		errors.Is(err, models.ErrClaimExists),
		errors.Is(err, models.ErrClaimNotPending):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}
