package services

import (
	"context"
	"time"

	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/app/models/dto"
	"github.com/lfarias/academico/internal/client/studentclient"
	"github.com/lfarias/academico/internal/pkg/apperrors"
	"github.com/lfarias/academico/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// EnrollmentRepository is the persistence capability the enrollment service needs
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, status models.EnrollmentStatus) ([]*models.Enrollment, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentService handles enrollment-related operations. Every read and
// write coordinates with the remote student service: the student fetch always
// precedes the active-flag check, which always precedes persistence, so a
// validation failure never leaves a partial write.
type EnrollmentService interface {
	CreateEnrollment(ctx context.Context, req *dto.EnrollmentRequest) (*dto.EnrollmentResponse, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error)
	GetAllEnrollments(ctx context.Context, status string) ([]*dto.EnrollmentResponse, error)
	GetEnrollmentsByStudentID(ctx context.Context, studentID int64) ([]*dto.EnrollmentResponse, error)
	UpdateEnrollment(ctx context.Context, id int64, req *dto.EnrollmentRequest) (*dto.EnrollmentResponse, error)
	CancelEnrollment(ctx context.Context, id int64) (*dto.EnrollmentResponse, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

type enrollmentService struct {
	enrollmentRepo EnrollmentRepository
	studentClient  studentclient.Client
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo EnrollmentRepository, studentClient studentclient.Client, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentClient:  studentClient,
		logger:         logger,
	}
}

// CreateEnrollment enrolls a student in a course. The student must exist and
// be active; the enrollment date is the current date and the initial status
// is always ACTIVE regardless of the request.
func (s *enrollmentService) CreateEnrollment(ctx context.Context, req *dto.EnrollmentRequest) (*dto.EnrollmentResponse, error) {
	s.logger.Info().Int64("studentId", req.StudentID).Msg("Creating enrollment")

	student, err := s.studentClient.GetStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	if !student.Active {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentInactive, "Cannot enroll inactive student with ID: %d", student.ID)
	}

	enrollment := &models.Enrollment{
		StudentID:      req.StudentID,
		CourseName:     req.CourseName,
		EnrollmentDate: helpers.ToDate(time.Now()),
		Status:         models.EnrollmentStatusActive,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollmentId", enrollment.ID).Msg("Enrollment created successfully")

	return dto.NewEnrollmentResponse(enrollment, student.Name), nil
}

// GetEnrollmentByID retrieves an enrollment and enriches it with the
// student's name. A remote failure at this stage propagates: an enrollment
// whose student has since disappeared becomes unreadable rather than being
// silently returned without enrichment.
func (s *enrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error) {
	s.logger.Debug().Int64("enrollmentId", id).Msg("Fetching enrollment")

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrEnrollmentNotFound, "Enrollment not found with ID: %d", id)
	}

	student, err := s.studentClient.GetStudentByID(ctx, enrollment.StudentID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponse(enrollment, student.Name), nil
}

// GetAllEnrollments retrieves every enrollment, optionally filtered by
// status, performing one remote student lookup per row in load order.
func (s *enrollmentService) GetAllEnrollments(ctx context.Context, status string) ([]*dto.EnrollmentResponse, error) {
	s.logger.Debug().Str("status", status).Msg("Fetching all enrollments")

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetAll(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		student, err := s.studentClient.GetStudentByID(ctx, enrollment.StudentID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewEnrollmentResponse(enrollment, student.Name))
	}

	return responses, nil
}

// GetEnrollmentsByStudentID retrieves the enrollments of a single student.
// The student is fetched once up front, failing fast even when the student
// has no enrollments, and enriches every row.
func (s *enrollmentService) GetEnrollmentsByStudentID(ctx context.Context, studentID int64) ([]*dto.EnrollmentResponse, error) {
	s.logger.Debug().Int64("studentId", studentID).Msg("Fetching enrollments for student")

	student, err := s.studentClient.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.NewEnrollmentResponse(enrollment, student.Name))
	}

	return responses, nil
}

// UpdateEnrollment overwrites the student reference and course name. The
// student named in the request is fetched and must be active, which allows
// reassigning an enrollment to a different student. Enrollment date and
// status are never touched.
func (s *enrollmentService) UpdateEnrollment(ctx context.Context, id int64, req *dto.EnrollmentRequest) (*dto.EnrollmentResponse, error) {
	s.logger.Info().Int64("enrollmentId", id).Msg("Updating enrollment")

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrEnrollmentNotFound, "Enrollment not found with ID: %d", id)
	}

	student, err := s.studentClient.GetStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	if !student.Active {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentInactive, "Cannot update enrollment with inactive student")
	}

	enrollment.StudentID = req.StudentID
	enrollment.CourseName = req.CourseName

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollmentId", enrollment.ID).Msg("Enrollment updated successfully")

	return dto.NewEnrollmentResponse(enrollment, student.Name), nil
}

// CancelEnrollment sets the status to CANCELLED unconditionally; cancelling
// an already-cancelled enrollment succeeds with the same outcome. The
// response is enriched with the enrollment's stored student, fetched after
// the status change is persisted.
func (s *enrollmentService) CancelEnrollment(ctx context.Context, id int64) (*dto.EnrollmentResponse, error) {
	s.logger.Info().Int64("enrollmentId", id).Msg("Cancelling enrollment")

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrEnrollmentNotFound, "Enrollment not found with ID: %d", id)
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, models.EnrollmentStatusCancelled); err != nil {
		return nil, err
	}
	enrollment.Status = models.EnrollmentStatusCancelled

	s.logger.Info().Int64("enrollmentId", id).Msg("Enrollment cancelled successfully")

	student, err := s.studentClient.GetStudentByID(ctx, enrollment.StudentID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponse(enrollment, student.Name), nil
}

// DeleteEnrollment removes an enrollment regardless of status. No
// enrichment, no response body.
func (s *enrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	s.logger.Info().Int64("enrollmentId", id).Msg("Deleting enrollment")

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return apperrors.NewCustomErrorf(apperrors.ErrEnrollmentNotFound, "Enrollment not found with ID: %d", id)
	}

	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("enrollmentId", id).Msg("Enrollment deleted successfully")

	return nil
}

// parseStatusFilter validates the optional status query filter
func parseStatusFilter(status string) (models.EnrollmentStatus, error) {
	switch status {
	case "":
		return "", nil
	case string(models.EnrollmentStatusActive):
		return models.EnrollmentStatusActive, nil
	case string(models.EnrollmentStatusCancelled):
		return models.EnrollmentStatusCancelled, nil
	default:
		return "", apperrors.NewCustomErrorf(apperrors.ErrBadRequest, "Invalid status filter: %s", status)
	}
}
