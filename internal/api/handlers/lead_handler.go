package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nettbureau/pipedrive-leads/internal/client/pipedrive"
	"github.com/nettbureau/pipedrive-leads/internal/models"
	"github.com/nettbureau/pipedrive-leads/internal/repository"
	"github.com/nettbureau/pipedrive-leads/internal/service"
)

// CreateLeadRequestBody accepts property_size as a JSON number or a numeric
// string, as web forms send either.
type CreateLeadRequestBody struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	HousingType  string          `json:"housing_type"`
	PropertySize json.RawMessage `json:"property_size"`
	DealType     string          `json:"deal_type"`
	ContactType  string          `json:"contact_type"`
}

func (b CreateLeadRequestBody) toInput() (models.LeadInput, error) {
	size, err := parsePropertySize(b.PropertySize)
	if err != nil {
		return models.LeadInput{}, err
	}
	return models.LeadInput{
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		HousingType:  b.HousingType,
		PropertySize: size,
		DealType:     b.DealType,
		ContactType:  b.ContactType,
	}, nil
}

func parsePropertySize(raw json.RawMessage) (*float64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var text string
	if strings.HasPrefix(trimmed, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("property_size: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = trimmed
	}

	size, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("property_size must be a number, got %s", trimmed)
	}
	if _, ok := models.TruncateSize(size); !ok {
		return nil, fmt.Errorf("property_size out of range, got %s", trimmed)
	}
	return &size, nil
}

type LeadHandler struct {
	submissionService *service.SubmissionService
	leadService       *service.LeadService
}

func NewLeadHandler(submissionService *service.SubmissionService, leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{
		submissionService: submissionService,
		leadService:       leadService,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForLeadError maps a lead creation failure onto the gateway statuses.
func statusForLeadError(err error) int {
	var transportErr *pipedrive.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var reqBody CreateLeadRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	input, err := reqBody.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), input)
	if err != nil {
		resp := map[string]any{"error": err.Error()}
		if submission.Id != "" {
			resp["submission_id"] = submission.Id
		}
		writeJSON(w, statusForLeadError(err), resp)
		return
	}

	resp := map[string]any{
		"organization_id": submission.OrganizationId,
		"person_id":       submission.PersonId,
		"deal_id":         submission.DealId,
	}
	if submission.Id != "" {
		resp["submission_id"] = submission.Id
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	submission, err := h.submissionService.GetSubmission(r.Context(), id)
	if errors.Is(err, repository.ErrSubmissionNotFound) {
		writeError(w, http.StatusNotFound, "submission "+id+" not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get submission: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submission": submission,
	})
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.GetSubmissions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get submissions: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": submissions,
	})
}

func (h *LeadHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"fields": h.leadService.Options(),
	})
}
