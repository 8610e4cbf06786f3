package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/pkg/apperrors"
	"github.com/lfarias/academico/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student and fills in the generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, email, cpf, birth_date, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.Name, student.Email, student.CPF, student.BirthDate, student.Active).Scan(&student.ID)
	if err != nil {
		// Uniqueness is probed in the service first; the constraints are the
		// backstop for concurrent inserts
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.NewCustomErrorf(apperrors.ErrEmailAlreadyExists, "Email already exists: %s", student.Email)
		}
		if dberrors.IsDuplicateConstraintError(err, "students_cpf_key") {
			return apperrors.NewCustomErrorf(apperrors.ErrCPFAlreadyExists, "CPF already exists: %s", student.CPF)
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID. Returns (nil, nil) when no row matches.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, email, cpf, birth_date, active
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.CPF,
		&student.BirthDate,
		&student.Active,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students in store order
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, name, email, cpf, birth_date, active
		FROM students
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.CPF,
			&student.BirthDate,
			&student.Active,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ExistsByEmail checks whether any student already uses the given email
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// ExistsByCPF checks whether any student already uses the given CPF
func (r *StudentRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE cpf = $1)`, cpf).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking cpf existence: %w", err)
	}

	return exists, nil
}

// Update overwrites name, email, cpf and birth date. The active flag is
// untouched by updates.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, cpf = $3, birth_date = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Email, student.CPF, student.BirthDate, student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.NewCustomErrorf(apperrors.ErrEmailAlreadyExists, "Email already exists: %s", student.Email)
		}
		if dberrors.IsDuplicateConstraintError(err, "students_cpf_key") {
			return apperrors.NewCustomErrorf(apperrors.ErrCPFAlreadyExists, "CPF already exists: %s", student.CPF)
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by ID. Existing enrollments referencing the
// student are left dangling on purpose.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM students WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id)

	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
