package services

import (
	"context"
	"testing"
	"time"

	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/app/models/dto"
	"github.com/lfarias/academico/internal/client/studentclient"
	"github.com/lfarias/academico/internal/pkg/apperrors"
	"github.com/lfarias/academico/internal/pkg/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubEnrollmentRepo is an in-memory EnrollmentRepository
type stubEnrollmentRepo struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{enrollments: make(map[int64]*models.Enrollment)}
}

func (r *stubEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.nextID++
	enrollment.ID = r.nextID
	copied := *enrollment
	r.enrollments[enrollment.ID] = &copied
	return nil
}

func (r *stubEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := r.enrollments[id]
	if !ok {
		return nil, nil
	}
	copied := *enrollment
	return &copied, nil
}

func (r *stubEnrollmentRepo) GetAll(_ context.Context, status models.EnrollmentStatus) ([]*models.Enrollment, error) {
	var all []*models.Enrollment
	for id := int64(1); id <= r.nextID; id++ {
		enrollment, ok := r.enrollments[id]
		if !ok {
			continue
		}
		if status != "" && enrollment.Status != status {
			continue
		}
		copied := *enrollment
		all = append(all, &copied)
	}
	return all, nil
}

func (r *stubEnrollmentRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var matched []*models.Enrollment
	for id := int64(1); id <= r.nextID; id++ {
		if enrollment, ok := r.enrollments[id]; ok && enrollment.StudentID == studentID {
			copied := *enrollment
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *stubEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	stored, ok := r.enrollments[enrollment.ID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	stored.StudentID = enrollment.StudentID
	stored.CourseName = enrollment.CourseName
	return nil
}

func (r *stubEnrollmentRepo) UpdateStatus(_ context.Context, id int64, status models.EnrollmentStatus) error {
	stored, ok := r.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	stored.Status = status
	return nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, id int64) error {
	delete(r.enrollments, id)
	return nil
}

// stubStudentLookup fakes the remote student service
type stubStudentLookup struct {
	students map[int64]*studentclient.Student
	err      error
	calls    int
}

func newStubStudentLookup(students ...*studentclient.Student) *stubStudentLookup {
	lookup := &stubStudentLookup{students: make(map[int64]*studentclient.Student)}
	for _, student := range students {
		lookup.students[student.ID] = student
	}
	return lookup
}

func (c *stubStudentLookup) GetStudentByID(_ context.Context, id int64) (*studentclient.Student, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	student, ok := c.students[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student not found in Student Service")
	}
	return student, nil
}

func activeStudent(id int64, name string) *studentclient.Student {
	return &studentclient.Student{ID: id, Name: name, Active: true}
}

func newTestEnrollmentService(t *testing.T, lookup *stubStudentLookup) (EnrollmentService, *stubEnrollmentRepo) {
	t.Helper()
	repo := newStubEnrollmentRepo()
	return NewEnrollmentService(repo, lookup, zerolog.Nop()), repo
}

func TestCreateEnrollment_Success(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(5, "Ana Silva"))
	svc, repo := newTestEnrollmentService(t, lookup)

	resp, err := svc.CreateEnrollment(context.Background(), &dto.EnrollmentRequest{StudentID: 5, CourseName: "Algorithms"})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, int64(5), resp.StudentID)
	require.Equal(t, "Ana Silva", resp.StudentName)
	require.Equal(t, "Algorithms", resp.CourseName)
	require.Equal(t, string(models.EnrollmentStatusActive), resp.Status)
	require.Equal(t, validation.FormatDate(time.Now()), resp.EnrollmentDate)
	require.Len(t, repo.enrollments, 1)
}

func TestCreateEnrollment_InactiveStudent(t *testing.T) {
	lookup := newStubStudentLookup(&studentclient.Student{ID: 5, Name: "Ana Silva", Active: false})
	svc, repo := newTestEnrollmentService(t, lookup)

	_, err := svc.CreateEnrollment(context.Background(), &dto.EnrollmentRequest{StudentID: 5, CourseName: "Algorithms"})
	require.ErrorIs(t, err, apperrors.ErrStudentInactive)
	require.EqualError(t, err, "Cannot enroll inactive student with ID: 5")
	require.Empty(t, repo.enrollments, "a rejected enrollment must not be persisted")
}

func TestCreateEnrollment_StudentNotFound(t *testing.T) {
	lookup := newStubStudentLookup()
	svc, repo := newTestEnrollmentService(t, lookup)

	_, err := svc.CreateEnrollment(context.Background(), &dto.EnrollmentRequest{StudentID: 99, CourseName: "Algorithms"})
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	require.NotErrorIs(t, err, apperrors.ErrStudentServiceUnavailable)
	require.Empty(t, repo.enrollments)
}

func TestCreateEnrollment_StudentServiceDown(t *testing.T) {
	lookup := newStubStudentLookup()
	lookup.err = apperrors.NewCustomErrorf(apperrors.ErrStudentServiceUnavailable,
		"Error communicating with Student Service: %s", "connection refused")
	svc, repo := newTestEnrollmentService(t, lookup)

	_, err := svc.CreateEnrollment(context.Background(), &dto.EnrollmentRequest{StudentID: 5, CourseName: "Algorithms"})
	require.ErrorIs(t, err, apperrors.ErrStudentServiceUnavailable)
	require.NotErrorIs(t, err, apperrors.ErrStudentNotFound)
	require.Empty(t, repo.enrollments)
}

func TestGetEnrollmentByID_NotFound(t *testing.T) {
	svc, _ := newTestEnrollmentService(t, newStubStudentLookup())

	_, err := svc.GetEnrollmentByID(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	require.EqualError(t, err, "Enrollment not found with ID: 42")
}

func TestGetEnrollmentByID_StudentGoneAfterCreate(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(5, "Ana Silva"))
	svc, _ := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	created, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 5, CourseName: "Algorithms"})
	require.NoError(t, err)

	// Student deleted out from under the enrollment
	delete(lookup.students, 5)

	_, err = svc.GetEnrollmentByID(ctx, created.ID)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetAllEnrollments_LookupPerRow(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"), activeStudent(2, "Bruno Costa"))
	svc, _ := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	for _, req := range []*dto.EnrollmentRequest{
		{StudentID: 1, CourseName: "Algorithms"},
		{StudentID: 1, CourseName: "Databases"},
		{StudentID: 2, CourseName: "Networks"},
	} {
		_, err := svc.CreateEnrollment(ctx, req)
		require.NoError(t, err)
	}

	lookup.calls = 0
	responses, err := svc.GetAllEnrollments(ctx, "")
	require.NoError(t, err)
	require.Len(t, responses, 3)
	require.Equal(t, 3, lookup.calls, "one lookup per row even for repeated students")
}

func TestGetAllEnrollments_StatusFilter(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"))
	svc, _ := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	first, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Databases"})
	require.NoError(t, err)

	_, err = svc.CancelEnrollment(ctx, first.ID)
	require.NoError(t, err)

	cancelled, err := svc.GetAllEnrollments(ctx, "CANCELLED")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, "Algorithms", cancelled[0].CourseName)

	active, err := svc.GetAllEnrollments(ctx, "ACTIVE")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Databases", active[0].CourseName)
}

func TestGetAllEnrollments_InvalidStatusFilter(t *testing.T) {
	svc, _ := newTestEnrollmentService(t, newStubStudentLookup())

	_, err := svc.GetAllEnrollments(context.Background(), "FINISHED")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	require.EqualError(t, err, "Invalid status filter: FINISHED")
}

func TestGetEnrollmentsByStudentID_SingleLookup(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"))
	svc, _ := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	_, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)
	_, err = svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Databases"})
	require.NoError(t, err)

	lookup.calls = 0
	responses, err := svc.GetEnrollmentsByStudentID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	require.Equal(t, 1, lookup.calls, "student fetched once up front")
	for _, resp := range responses {
		require.Equal(t, "Ana Silva", resp.StudentName)
	}
}

func TestGetEnrollmentsByStudentID_FailsFastOnMissingStudent(t *testing.T) {
	svc, _ := newTestEnrollmentService(t, newStubStudentLookup())

	_, err := svc.GetEnrollmentsByStudentID(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateEnrollment_PreservesDateAndStatus(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"), activeStudent(2, "Bruno Costa"))
	svc, repo := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	created, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)
	_, err = svc.CancelEnrollment(ctx, created.ID)
	require.NoError(t, err)

	originalDate := repo.enrollments[created.ID].EnrollmentDate

	updated, err := svc.UpdateEnrollment(ctx, created.ID, &dto.EnrollmentRequest{StudentID: 2, CourseName: "Networks"})
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.StudentID)
	require.Equal(t, "Bruno Costa", updated.StudentName)
	require.Equal(t, "Networks", updated.CourseName)
	require.Equal(t, string(models.EnrollmentStatusCancelled), updated.Status)
	require.Equal(t, originalDate, repo.enrollments[created.ID].EnrollmentDate)
	require.Equal(t, models.EnrollmentStatusCancelled, repo.enrollments[created.ID].Status)
}

func TestUpdateEnrollment_InactiveStudent(t *testing.T) {
	lookup := newStubStudentLookup(
		activeStudent(1, "Ana Silva"),
		&studentclient.Student{ID: 2, Name: "Bruno Costa", Active: false},
	)
	svc, repo := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	created, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)

	_, err = svc.UpdateEnrollment(ctx, created.ID, &dto.EnrollmentRequest{StudentID: 2, CourseName: "Networks"})
	require.ErrorIs(t, err, apperrors.ErrStudentInactive)
	require.EqualError(t, err, "Cannot update enrollment with inactive student")
	require.Equal(t, int64(1), repo.enrollments[created.ID].StudentID)
	require.Equal(t, "Algorithms", repo.enrollments[created.ID].CourseName)
}

func TestUpdateEnrollment_NotFound(t *testing.T) {
	svc, _ := newTestEnrollmentService(t, newStubStudentLookup())

	_, err := svc.UpdateEnrollment(context.Background(), 42, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestCancelEnrollment_Idempotent(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"))
	svc, _ := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	created, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)

	first, err := svc.CancelEnrollment(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.EnrollmentStatusCancelled), first.Status)

	second, err := svc.CancelEnrollment(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.EnrollmentStatusCancelled), second.Status)
}

func TestCancelEnrollment_NotFound(t *testing.T) {
	svc, _ := newTestEnrollmentService(t, newStubStudentLookup())

	_, err := svc.CancelEnrollment(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestDeleteEnrollment(t *testing.T) {
	lookup := newStubStudentLookup(activeStudent(1, "Ana Silva"))
	svc, repo := newTestEnrollmentService(t, lookup)
	ctx := context.Background()

	created, err := svc.CreateEnrollment(ctx, &dto.EnrollmentRequest{StudentID: 1, CourseName: "Algorithms"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEnrollment(ctx, created.ID))
	require.Empty(t, repo.enrollments)

	err = svc.DeleteEnrollment(ctx, created.ID)
	require.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
