package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// per-resource sortBy allow-lists
var (
	projectSortColumns       = []string{"created_at", "updated_at", "name"}
	certificationSortColumns = []string{"created_at", "issued_date", "title"}
	journeySortColumns       = []string{"created_at", "start_date", "title"}
)

// parseListQuery coerces the shared pagination/sorting parameters, collecting
// every violation before reporting.
func parseListQuery(r *http.Request, allowedSort []string, defaultSort string) (services.ListQuery, error) {
	violations := errs.NewValidationErr()
	values := r.URL.Query()

	page := defaultPage
	if raw := values.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			violations.Add("page", "must be a positive integer")
		} else {
			page = parsed
		}
	}

	limit := defaultLimit
	if raw := values.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxLimit {
			violations.Add("limit", fmt.Sprintf("must be an integer between 1 and %d", maxLimit))
		} else {
			limit = parsed
		}
	}

	sortBy := defaultSort
	if raw := values.Get("sortBy"); raw != "" {
		if !contains(allowedSort, raw) {
			violations.Add("sortBy", "must be one of "+strings.Join(allowedSort, ", "))
		} else {
			sortBy = raw
		}
	}

	sortOrder := "desc"
	if raw := strings.ToLower(values.Get("sortOrder")); raw != "" {
		if raw != "asc" && raw != "desc" {
			violations.Add("sortOrder", "must be asc or desc")
		} else {
			sortOrder = raw
		}
	}

	if violations.HasViolations() {
		return services.ListQuery{}, violations
	}

	return services.ListQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}

// parseBoolParam returns nil when the parameter is absent.
func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewValidationErr().Add(name, "must be true or false")
	}
	return &parsed, nil
}

// parseSkillsParam accepts a comma-separated list.
func parseSkillsParam(r *http.Request) []string {
	raw := r.URL.Query().Get("skills")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
