package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Application statuses. Approved and Rejected are terminal.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Claim statuses. ClaimNone means no claim has been filed yet.
const (
	ClaimNone     = "None"
	ClaimPending  = "Pending"
	ClaimApproved = "Approved"
	ClaimRejected = "Rejected"
)

// Transition precondition failures. Handlers map these to 409 responses.
var (
	ErrNotPending       = errors.New("application is no longer pending")
	ErrNotApproved      = errors.New("application is not approved")
	ErrFeedbackRequired = errors.New("feedback is required")
	ErrClaimExists      = errors.New("a claim has already been filed")
	ErrClaimNotPending  = errors.New("claim is not pending")
)

// Application is a customer's request to bind a policy. It carries the
// underwriting decision, the optional agent assignment, and the nested claim.
type Application struct {
	BaseModel
	ApplicantName       string     `json:"applicantName"`
	ApplicantEmail      string     `gorm:"index" json:"applicantEmail"`
	ApplicantAddress    string     `json:"applicantAddress"`
	NIDNumber           string     `json:"nidNumber"`
	PhoneNumber         string     `json:"phoneNumber"`
	DateOfBirth         string     `json:"dateOfBirth"`
	NomineeName         string     `json:"nomineeName"`
	NomineeRelationship string     `json:"nomineeRelationship"`
	NomineeContact      string     `json:"nomineeContact"`
	HealthInfo          string     `json:"healthInfo"`
	HealthDeclaration   bool       `json:"healthDeclaration"`
	TermsAccepted       bool       `json:"termsAccepted"`
	PolicyID            *uuid.UUID `gorm:"type:uuid;index" json:"policyId"`
	PolicyTitle         string     `json:"policyTitle"`
	CoverageAmount      float64    `json:"coverageAmount"`
	EstimatedPremium    float64    `json:"estimatedPremium"`
	Status              string     `gorm:"index;default:Pending" json:"status"`
	RejectionFeedback   string     `json:"rejectionFeedback,omitempty"`
	AgentID             *uuid.UUID `gorm:"type:uuid;index" json:"agentId,omitempty"`
	AgentName           string     `json:"agentName,omitempty"`
	PremiumPaid         bool       `json:"premiumPaid"`
	ClaimStatus         string     `gorm:"index;default:None" json:"claimStatus"`
	ClaimDetails        string     `json:"claimDetails,omitempty"`
	ClaimFeedback       string     `json:"claimFeedback,omitempty"`
	ClaimDocumentURL    string     `json:"documentUrl,omitempty"`
	ClaimFiledAt        *time.Time `json:"claimFiledAt,omitempty"`
	SubmittedAt         time.Time  `json:"submissionDate"`
}

// Approve moves a pending application to Approved.
func (a *Application) Approve() error {
	if a.Status != StatusPending {
		return ErrNotPending
	}
	a.Status = StatusApproved
	return nil
}

// Reject moves a pending application to Rejected. Feedback for the applicant
// is mandatory.
func (a *Application) Reject(feedback string) error {
	if a.Status != StatusPending {
		return ErrNotPending
	}
	if strings.TrimSpace(feedback) == "" {
		return ErrFeedbackRequired
	}
	a.Status = StatusRejected
	a.RejectionFeedback = feedback
	return nil
}

// AssignAgent attaches an agent to a pending application without touching
// its status. Assignment routes the work; it never gates an admin decision.
func (a *Application) AssignAgent(agentID uuid.UUID, agentName string) error {
	if a.Status != StatusPending {
		return ErrNotPending
	}
	id := agentID
	a.AgentID = &id
	a.AgentName = agentName
	return nil
}

// FileClaim opens a claim against an approved application. Only one claim
// may ever be filed.
func (a *Application) FileClaim(details, documentURL string, now time.Time) error {
	if a.Status != StatusApproved {
		return ErrNotApproved
	}
	if a.ClaimStatus != ClaimNone {
		return ErrClaimExists
	}
	a.ClaimStatus = ClaimPending
	a.ClaimDetails = details
	a.ClaimDocumentURL = documentURL
	filed := now
	a.ClaimFiledAt = &filed
	return nil
}

// ApproveClaim settles a pending claim.
func (a *Application) ApproveClaim() error {
	if a.ClaimStatus != ClaimPending {
		return ErrClaimNotPending
	}
	a.ClaimStatus = ClaimApproved
	return nil
}

// RejectClaim declines a pending claim with feedback for the claimant.
func (a *Application) RejectClaim(feedback string) error {
	if a.ClaimStatus != ClaimPending {
		return ErrClaimNotPending
	}
	if strings.TrimSpace(feedback) == "" {
		return ErrFeedbackRequired
	}
	a.ClaimStatus = ClaimRejected
	a.ClaimFeedback = feedback
	return nil
}
