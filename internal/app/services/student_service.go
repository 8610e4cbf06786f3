package services

import (
	"context"

	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/app/models/dto"
	"github.com/lfarias/academico/internal/pkg/apperrors"
	"github.com/lfarias/academico/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// StudentRepository is the persistence capability the student service needs
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	GetAllStudents(ctx context.Context) ([]*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateStudent persists a new student after probing email and CPF
// uniqueness, in that order. New students are always active.
func (s *studentService) CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	s.logger.Info().Str("email", req.Email).Msg("Creating student")

	emailExists, err := s.studentRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrEmailAlreadyExists, "Email already exists: %s", req.Email)
	}

	cpfExists, err := s.studentRepo.ExistsByCPF(ctx, req.CPF)
	if err != nil {
		return nil, err
	}
	if cpfExists {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrCPFAlreadyExists, "CPF already exists: %s", req.CPF)
	}

	birthDate, err := validation.ParseDate(req.BirthDate)
	if err != nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrValidationFailed, "Invalid birth date: %s", req.BirthDate)
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		CPF:       req.CPF,
		BirthDate: birthDate,
		Active:    true,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Msg("Student created successfully")

	return dto.NewStudentResponse(student), nil
}

// GetStudentByID retrieves a student by ID
func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	s.logger.Debug().Int64("studentId", id).Msg("Fetching student")

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentNotFound, "Student not found with ID: %d", id)
	}

	return dto.NewStudentResponse(student), nil
}

// GetAllStudents retrieves every student record
func (s *studentService) GetAllStudents(ctx context.Context) ([]*dto.StudentResponse, error) {
	s.logger.Debug().Msg("Fetching all students")

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}

	return responses, nil
}

// UpdateStudent overwrites a student's mutable fields. Uniqueness is
// re-probed only for values that actually changed; the active flag is never
// touched by updates.
func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	s.logger.Info().Int64("studentId", id).Msg("Updating student")

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentNotFound, "Student not found with ID: %d", id)
	}

	if student.Email != req.Email {
		emailExists, err := s.studentRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if emailExists {
			return nil, apperrors.NewCustomErrorf(apperrors.ErrEmailAlreadyExists, "Email already exists: %s", req.Email)
		}
	}

	if student.CPF != req.CPF {
		cpfExists, err := s.studentRepo.ExistsByCPF(ctx, req.CPF)
		if err != nil {
			return nil, err
		}
		if cpfExists {
			return nil, apperrors.NewCustomErrorf(apperrors.ErrCPFAlreadyExists, "CPF already exists: %s", req.CPF)
		}
	}

	birthDate, err := validation.ParseDate(req.BirthDate)
	if err != nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrValidationFailed, "Invalid birth date: %s", req.BirthDate)
	}

	student.Name = req.Name
	student.Email = req.Email
	student.CPF = req.CPF
	student.BirthDate = birthDate

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Msg("Student updated successfully")

	return dto.NewStudentResponse(student), nil
}

// DeleteStudent removes a student unconditionally. Enrollments referencing
// the student are left dangling; the enrollment service validates references
// at write time only.
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	s.logger.Info().Int64("studentId", id).Msg("Deleting student")

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperrors.NewCustomErrorf(apperrors.ErrStudentNotFound, "Student not found with ID: %d", id)
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", id).Msg("Student deleted successfully")

	return nil
}
