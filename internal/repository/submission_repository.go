package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionStatusCompleted SubmissionStatus = "completed"
	SubmissionStatusFailed    SubmissionStatus = "failed"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type Submission struct {
	Id             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	HousingType    string           `json:"housing_type"`
	DealType       string           `json:"deal_type"`
	ContactType    string           `json:"contact_type"`
	PropertySize   *int64           `json:"property_size"`
	Status         SubmissionStatus `json:"status"`
	OrganizationId *int64           `json:"organization_id"`
	PersonId       *int64           `json:"person_id"`
	DealId         *int64           `json:"deal_id"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create stores s, assigning an id and timestamp when they are empty.
func (r *SubmissionRepository) Create(ctx context.Context, s *Submission) error {
	if s.Id == "" {
		s.Id = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO lead_submissions (
			id, name, email, phone, housing_type, deal_type, contact_type, property_size,
			status, organization_id, person_id, deal_id, error_message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.Id,
		s.Name,
		s.Email,
		s.Phone,
		s.HousingType,
		s.DealType,
		s.ContactType,
		s.PropertySize,
		s.Status,
		s.OrganizationId,
		s.PersonId,
		s.DealId,
		s.ErrorMessage,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

const selectSubmission = `
	SELECT id, name, email, phone, housing_type, deal_type, contact_type, property_size,
		status, organization_id, person_id, deal_id, error_message, created_at
	FROM lead_submissions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var s Submission
	var propertySize, orgId, personId, dealId sql.NullInt64
	err := row.Scan(
		&s.Id,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.HousingType,
		&s.DealType,
		&s.ContactType,
		&propertySize,
		&s.Status,
		&orgId,
		&personId,
		&dealId,
		&s.ErrorMessage,
		&s.CreatedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	s.PropertySize = nullableInt(propertySize)
	s.OrganizationId = nullableInt(orgId)
	s.PersonId = nullableInt(personId)
	s.DealId = nullableInt(dealId)
	return s, nil
}

func (r *SubmissionRepository) GetSubmission(ctx context.Context, id string) (Submission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx, selectSubmission+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrSubmissionNotFound
	}
	if err != nil {
		return Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return s, nil
}

// GetSubmissions returns every submission, newest first.
func (r *SubmissionRepository) GetSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := r.db.QueryContext(ctx, selectSubmission+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("get submissions: %w", err)
	}
	defer rows.Close()

	submissions := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return submissions, nil
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
