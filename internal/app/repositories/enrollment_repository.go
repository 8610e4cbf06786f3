package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/pkg/apperrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create inserts a new enrollment and fills in the generated ID
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_name, enrollment_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.CourseName, enrollment.EnrollmentDate, enrollment.Status).Scan(&enrollment.ID)
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID. Returns (nil, nil) when no row matches.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_name, enrollment_date, status
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseName,
		&enrollment.EnrollmentDate,
		&enrollment.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetAll retrieves all enrollments in store order, optionally filtered by status
func (r *EnrollmentRepository) GetAll(ctx context.Context, status models.EnrollmentStatus) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_name, enrollment_date, status
		FROM enrollments
	`

	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = r.db.Query(ctx, query+` WHERE status = $1`, status)
	} else {
		rows, err = r.db.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// GetByStudentID retrieves all enrollments referencing the given student
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_name, enrollment_date, status
		FROM enrollments
		WHERE student_id = $1
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// Update overwrites student reference and course name. Enrollment date and
// status are never touched by updates.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET student_id = $1, course_name = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query,
		enrollment.StudentID, enrollment.CourseName, enrollment.ID)

	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// UpdateStatus sets the lifecycle status of an enrollment
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	query := `UPDATE enrollments SET status = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, status, id)

	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete removes an enrollment by ID regardless of its status
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM enrollments WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id)

	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// scanEnrollments collects enrollment rows preserving store order
func scanEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseName,
			&enrollment.EnrollmentDate,
			&enrollment.Status,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
