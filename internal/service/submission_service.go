package service

import (
	"context"

	"github.com/nettbureau/pipedrive-leads/internal/models"
	"github.com/nettbureau/pipedrive-leads/internal/repository"
)

type LeadCreator interface {
	CreateLead(ctx context.Context, input models.LeadInput) (*models.CreationResult, error)
}

// SubmissionService submits leads and keeps a ledger entry of every attempt.
type SubmissionService struct {
	leads          LeadCreator
	submissionRepo *repository.SubmissionRepository
	logger         Logger
}

func NewSubmissionService(
	leads LeadCreator,
	submissionRepo *repository.SubmissionRepository,
	logger Logger,
) *SubmissionService {
	return &SubmissionService{
		leads:          leads,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// Submit creates the lead and records the outcome. The returned error is the
// one from lead creation; a ledger write failure is only logged, since the
// Pipedrive records exist either way.
func (s *SubmissionService) Submit(ctx context.Context, input models.LeadInput) (repository.Submission, error) {
	result, leadErr := s.leads.CreateLead(ctx, input)

	submission := repository.Submission{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		HousingType: input.HousingType,
		DealType:    input.DealType,
		ContactType: input.ContactType,
		Status:      repository.SubmissionStatusCompleted,
	}
	if size, ok := input.PropertySizeValue(); ok {
		submission.PropertySize = &size
	}
	if leadErr != nil {
		submission.Status = repository.SubmissionStatusFailed
		submission.ErrorMessage = leadErr.Error()
	} else {
		submission.OrganizationId = &result.OrganizationId
		submission.PersonId = &result.PersonId
		submission.DealId = &result.DealId
	}

	if err := s.submissionRepo.Create(ctx, &submission); err != nil {
		s.logger.Error("record submission", "error", err)
		// Not stored, so there is nothing to look up by id.
		submission.Id = ""
	}

	return submission, leadErr
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (repository.Submission, error) {
	return s.submissionRepo.GetSubmission(ctx, id)
}

func (s *SubmissionService) GetSubmissions(ctx context.Context) ([]repository.Submission, error) {
	return s.submissionRepo.GetSubmissions(ctx)
}
