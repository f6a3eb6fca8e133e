package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRequest() applicationRequest {
	return applicationRequest{
		ApplicantName:       "Alice Rahman",
		ApplicantEmail:      "alice@example.com",
		ApplicantAddress:    "12 Lake View Road",
		NIDNumber:           "1234567890",
		PhoneNumber:         "+880 1711-000000",
		DateOfBirth:         "1990-04-12",
		NomineeName:         "Bilal Rahman",
		NomineeRelationship: "Spouse",
		NomineeContact:      "+880 1711-000001",
		HealthDeclaration:   true,
		TermsAccepted:       true,
	}
}

func TestValidateApplication(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *applicationRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *applicationRequest) {},
		},
		{
			name:    "missing applicant name",
			mutate:  func(r *applicationRequest) { r.ApplicantName = "" },
			wantErr: "applicantName is required",
		},
		{
			name:    "whitespace-only address",
			mutate:  func(r *applicationRequest) { r.ApplicantAddress = "   " },
			wantErr: "applicantAddress is required",
		},
		{
			name:    "nid too short",
			mutate:  func(r *applicationRequest) { r.NIDNumber = "12345" },
			wantErr: "nid number must be 10 to 17 digits",
		},
		{
			name:    "nid with letters",
			mutate:  func(r *applicationRequest) { r.NIDNumber = "12345abcde" },
			wantErr: "nid number must be 10 to 17 digits",
		},
		{
			name:    "phone with letters",
			mutate:  func(r *applicationRequest) { r.PhoneNumber = "call-me-maybe" },
			wantErr: "phone number is invalid",
		},
		{
			name:    "unparseable date of birth",
			mutate:  func(r *applicationRequest) { r.DateOfBirth = "12/04/1990" },
			wantErr: "date of birth must be YYYY-MM-DD",
		},
		{
			name: "underage applicant",
			mutate: func(r *applicationRequest) {
				r.DateOfBirth = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
			},
			wantErr: "at least 18 years old",
		},
		{
			name:    "missing nominee",
			mutate:  func(r *applicationRequest) { r.NomineeName = "" },
			wantErr: "nomineeName is required",
		},
		{
			name:    "invalid nominee contact",
			mutate:  func(r *applicationRequest) { r.NomineeContact = "no" },
			wantErr: "nominee contact number is invalid",
		},
		{
			name:    "health declaration unchecked",
			mutate:  func(r *applicationRequest) { r.HealthDeclaration = false },
			wantErr: "health declaration must be confirmed",
		},
		{
			name:    "terms unaccepted",
			mutate:  func(r *applicationRequest) { r.TermsAccepted = false },
			wantErr: "terms and conditions must be accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validateApplication(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed", time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC), 36},
		{"birthday not yet reached", time.Date(1990, 9, 1, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageAt(tt.dob, now))
		})
	}
}
