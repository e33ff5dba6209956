package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
)

const dateLayout = "2006-01-02"

// Typed request bodies, one per endpoint. Update variants make every field
// optional while keeping its format constraints when present.

type projectCreateRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Details    string   `json:"details" validate:"required,min=10"`
	Skills     []string `json:"skills" validate:"omitempty,dive,required"`
	DemoLink   string   `json:"demo_link" validate:"omitempty,url"`
	GithubLink string   `json:"github_link" validate:"omitempty,url"`
}

func (req projectCreateRequest) toInput() services.ProjectCreateInput {
	return services.ProjectCreateInput{
		Name:       req.Name,
		Details:    req.Details,
		Skills:     req.Skills,
		DemoLink:   req.DemoLink,
		GithubLink: req.GithubLink,
	}
}

type projectUpdateRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Details    *string   `json:"details" validate:"omitempty,min=10"`
	Skills     *[]string `json:"skills" validate:"omitempty,dive,required"`
	DemoLink   *string   `json:"demo_link" validate:"omitempty,url"`
	GithubLink *string   `json:"github_link" validate:"omitempty,url"`
}

func (req projectUpdateRequest) toInput() services.ProjectUpdateInput {
	return services.ProjectUpdateInput{
		Name:       req.Name,
		Details:    req.Details,
		Skills:     req.Skills,
		DemoLink:   req.DemoLink,
		GithubLink: req.GithubLink,
	}
}

type certificationCreateRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Issuer          string `json:"issuer" validate:"required,max=255"`
	IssuedDate      string `json:"issued_date" validate:"required,datetime=2006-01-02"`
	CertificationID string `json:"certification_id" validate:"omitempty,max=255"`
	Details         string `json:"details"`
	LinkURL         string `json:"link_url" validate:"omitempty,url"`
}

func (req certificationCreateRequest) toInput() services.CertificationCreateInput {
	issuedDate, _ := time.Parse(dateLayout, req.IssuedDate)
	return services.CertificationCreateInput{
		Title:           req.Title,
		Issuer:          req.Issuer,
		IssuedDate:      issuedDate,
		CertificationID: req.CertificationID,
		Details:         req.Details,
		LinkURL:         req.LinkURL,
	}
}

type certificationUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255"`
	Issuer          *string `json:"issuer" validate:"omitempty,min=1,max=255"`
	IssuedDate      *string `json:"issued_date" validate:"omitempty,datetime=2006-01-02"`
	CertificationID *string `json:"certification_id" validate:"omitempty,max=255"`
	Details         *string `json:"details"`
	LinkURL         *string `json:"link_url" validate:"omitempty,url"`
}

func (req certificationUpdateRequest) toInput() services.CertificationUpdateInput {
	return services.CertificationUpdateInput{
		Title:           req.Title,
		Issuer:          req.Issuer,
		IssuedDate:      parseOptionalDate(req.IssuedDate),
		CertificationID: req.CertificationID,
		Details:         req.Details,
		LinkURL:         req.LinkURL,
	}
}

type journeyCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Details     string `json:"details" validate:"required,min=10"`
	JourneyType string `json:"journey_type" validate:"required,oneof=Experience Education Volunteer"`
}

func (req journeyCreateRequest) toInput() services.JourneyCreateInput {
	startDate, _ := time.Parse(dateLayout, req.StartDate)
	input := services.JourneyCreateInput{
		Title:       req.Title,
		CompanyName: req.CompanyName,
		StartDate:   startDate,
		Details:     req.Details,
		JourneyType: req.JourneyType,
	}
	if req.EndDate != "" {
		endDate, _ := time.Parse(dateLayout, req.EndDate)
		input.EndDate = &endDate
	}
	return input
}

type journeyUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	CompanyName *string `json:"company_name" validate:"omitempty,min=1,max=255"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Details     *string `json:"details" validate:"omitempty,min=10"`
	JourneyType *string `json:"journey_type" validate:"omitempty,oneof=Experience Education Volunteer"`
}

func (req journeyUpdateRequest) toInput() services.JourneyUpdateInput {
	return services.JourneyUpdateInput{
		Title:       req.Title,
		CompanyName: req.CompanyName,
		StartDate:   parseOptionalDate(req.StartDate),
		EndDate:     parseOptionalDate(req.EndDate),
		Details:     req.Details,
		JourneyType: req.JourneyType,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// decodeAndValidate unmarshals a JSON body into dst and runs the declarative
// schema over it.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewMalformedPayloadError("JSON", err)
	}
	return checkStruct(dst)
}

func parseOptionalDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil
	}
	return &parsed
}
