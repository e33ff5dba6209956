package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
)

// The upload field historically went by two names. Both are accepted and
// resolved to the canonical payload once, here at the boundary.
var imageFieldAliases = []string{"image", "uploadedFile"}

// fileFromRequest pulls the single image payload out of a multipart request.
// Returns (nil, nil) when the request is not multipart or carries no file.
func fileFromRequest(r *http.Request, maxBytes int64) (*services.ImageUpload, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, nil
	}

	// headroom for the non-file form fields
	if err := r.ParseMultipartForm(maxBytes + 1<<20); err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	for _, field := range imageFieldAliases {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}

		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, errs.NewMalformedPayloadError("multipart", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, errs.NewMalformedPayloadError("multipart", err)
		}

		return &services.ImageUpload{
			Data:     data,
			MimeType: header.Header.Get("Content-Type"),
			FileName: header.Filename,
		}, nil
	}
	return nil, nil
}

// projectCreateFromForm builds the typed create request from multipart form
// values. The form must already be parsed.
func projectCreateFromForm(r *http.Request) projectCreateRequest {
	req := projectCreateRequest{
		Name:       r.FormValue("name"),
		Details:    r.FormValue("details"),
		DemoLink:   r.FormValue("demo_link"),
		GithubLink: r.FormValue("github_link"),
	}
	req.Skills = formSkills(r)
	return req
}

// projectUpdateFromForm builds the typed update request: only fields present
// in the form become part of the partial update.
func projectUpdateFromForm(r *http.Request) projectUpdateRequest {
	req := projectUpdateRequest{}
	if r.MultipartForm == nil {
		return req
	}

	form := r.MultipartForm.Value
	if values, ok := form["name"]; ok && len(values) > 0 {
		req.Name = &values[0]
	}
	if values, ok := form["details"]; ok && len(values) > 0 {
		req.Details = &values[0]
	}
	if values, ok := form["demo_link"]; ok && len(values) > 0 {
		req.DemoLink = &values[0]
	}
	if values, ok := form["github_link"]; ok && len(values) > 0 {
		req.GithubLink = &values[0]
	}
	if _, ok := form["skills"]; ok {
		skills := formSkills(r)
		req.Skills = &skills
	} else if _, ok := form["skills[]"]; ok {
		skills := formSkills(r)
		req.Skills = &skills
	}
	return req
}

// formSkills accepts skills as a repeated field, under either the bare or the
// bracketed name.
func formSkills(r *http.Request) []string {
	if r.MultipartForm == nil {
		return nil
	}
	var skills []string
	for _, key := range []string{"skills", "skills[]"} {
		for _, value := range r.MultipartForm.Value[key] {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}
	return skills
}
