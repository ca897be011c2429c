package service

import (
	"context"
	"fmt"

	"github.com/nettbureau/pipedrive-leads/internal/client"
	"github.com/nettbureau/pipedrive-leads/internal/client/pipedrive"
	"github.com/nettbureau/pipedrive-leads/internal/models"
)

const (
	visibleToEveryone = 3

	defaultOrganizationName = "Unknown Organization"
	defaultDealName         = "New Lead"
)

const (
	ResourceOrganization = "organization"
	ResourcePerson       = "person"
	ResourceDeal         = "deal"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// RemoteCreationError is returned when Pipedrive accepted the request but
// the body carries no data.id.
type RemoteCreationError struct {
	Resource string
	Message  string
}

func (e *RemoteCreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %s", e.Resource, e.Message)
}

type LeadService struct {
	crmClient          client.CRMClient
	logger             Logger
	housingTypeOptions models.OptionMap
	dealTypeOptions    models.OptionMap
	contactTypeOptions models.OptionMap
}

func NewLeadService(crmClient client.CRMClient, logger Logger) *LeadService {
	return &LeadService{
		crmClient:          crmClient,
		logger:             logger,
		housingTypeOptions: models.HousingTypeOptions(),
		dealTypeOptions:    models.DealTypeOptions(),
		contactTypeOptions: models.ContactTypeOptions(),
	}
}

// CreateLead creates the organization, the person and the deal of a lead, in
// that order. The first failing step aborts the rest and its error is
// returned as is; records created before the failure stay in Pipedrive.
func (s *LeadService) CreateLead(ctx context.Context, input models.LeadInput) (*models.CreationResult, error) {
	result, err := s.createLead(ctx, input)
	if err != nil {
		s.logger.Error("lead creation failed", "name", input.Name, "error", err)
		return nil, err
	}
	return result, nil
}

func (s *LeadService) createLead(ctx context.Context, input models.LeadInput) (*models.CreationResult, error) {
	s.logger.Info("creating organization", "name", input.Name)
	orgId, err := s.createOrganization(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("organization created", "organization_id", orgId)

	s.logger.Info("creating person", "organization_id", orgId)
	personId, err := s.createPerson(ctx, input, orgId)
	if err != nil {
		return nil, err
	}
	s.logger.Info("person created", "person_id", personId)

	s.logger.Info("creating deal", "organization_id", orgId, "person_id", personId)
	dealId, err := s.createDeal(ctx, input, orgId, personId)
	if err != nil {
		return nil, err
	}
	s.logger.Info("deal created", "deal_id", dealId)

	return &models.CreationResult{
		OrganizationId: orgId,
		PersonId:       personId,
		DealId:         dealId,
	}, nil
}

func (s *LeadService) createOrganization(ctx context.Context, input models.LeadInput) (int64, error) {
	return s.create(ctx, pipedrive.EndpointOrganizations, ResourceOrganization, s.organizationPayload(input))
}

func (s *LeadService) createPerson(ctx context.Context, input models.LeadInput, orgId int64) (int64, error) {
	return s.create(ctx, pipedrive.EndpointPersons, ResourcePerson, s.personPayload(input, orgId))
}

func (s *LeadService) createDeal(ctx context.Context, input models.LeadInput, orgId, personId int64) (int64, error) {
	return s.create(ctx, pipedrive.EndpointDeals, ResourceDeal, s.dealPayload(input, orgId, personId))
}

func (s *LeadService) create(ctx context.Context, endpoint, resource string, payload map[string]any) (int64, error) {
	resp, err := s.crmClient.Post(ctx, endpoint, payload)
	if err != nil {
		return 0, err
	}
	id, ok := resp.CreatedId()
	if !ok {
		return 0, &RemoteCreationError{Resource: resource, Message: resp.ErrorMessage()}
	}
	return id, nil
}

func (s *LeadService) organizationPayload(input models.LeadInput) map[string]any {
	return map[string]any{
		"name":       orDefault(input.Name, defaultOrganizationName),
		"visible_to": visibleToEveryone,
	}
}

func (s *LeadService) personPayload(input models.LeadInput, orgId int64) map[string]any {
	payload := map[string]any{
		"name":       input.Name,
		"email":      input.Email,
		"phone":      input.Phone,
		"org_id":     orgId,
		"visible_to": visibleToEveryone,
	}
	if optionId, ok := resolveOption(s.contactTypeOptions, input.ContactType); ok {
		payload[models.ContactTypeField] = optionId
	}
	return payload
}

func (s *LeadService) dealPayload(input models.LeadInput, orgId, personId int64) map[string]any {
	payload := map[string]any{
		"title":      "Lead: " + orDefault(input.Name, defaultDealName),
		"org_id":     orgId,
		"person_id":  personId,
		"visible_to": visibleToEveryone,
	}
	if optionId, ok := resolveOption(s.housingTypeOptions, input.HousingType); ok {
		payload[models.HousingTypeField] = optionId
	}
	// Presence check: a supplied size of 0 is still sent. Sizes that cannot
	// be expressed as an integer are left out like unknown labels.
	if size, ok := input.PropertySizeValue(); ok {
		payload[models.PropertySizeField] = size
	}
	if optionId, ok := resolveOption(s.dealTypeOptions, input.DealType); ok {
		payload[models.DealTypeField] = optionId
	}
	return payload
}

// resolveOption decides what happens to a label. Unknown and empty labels
// leave the field out of the payload without an error.
func resolveOption(options models.OptionMap, label string) (int, bool) {
	return options.Lookup(label)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
