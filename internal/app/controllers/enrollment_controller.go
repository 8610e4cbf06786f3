package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/academico/internal/app/models/dto"
	"github.com/lfarias/academico/internal/app/services"
	"github.com/lfarias/academico/internal/middleware"
)

// EnrollmentController handles enrollment-related operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// CreateEnrollment handles enrollment creation
// @Summary Create a new enrollment
// @Description Enrolls an active student in a course; status starts as ACTIVE and the enrollment date is today
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.EnrollmentResponse "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Inactive student or invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, &req, err)
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// GetEnrollmentByID retrieves an enrollment by ID
// @Summary Get enrollment by ID
// @Description Retrieves an enrollment enriched with the student's name from the student service
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse "Enrollment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment or student not found"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid enrollment ID")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// GetAllEnrollments retrieves all enrollments
// @Summary Get all enrollments
// @Description Retrieves all enrollments, optionally filtered by status, one student lookup per row
// @Tags enrollments
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (ACTIVE or CANCELLED)"
// @Success 200 {array} dto.EnrollmentResponse "Enrollments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.GetAllEnrollments(ctx, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// GetEnrollmentsByStudentID retrieves all enrollments of a student
// @Summary List a student's enrollments
// @Description Fetches the student once, failing fast if absent or unreachable, then lists their enrollments
// @Tags enrollments
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} dto.EnrollmentResponse "Enrollments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/student/{studentId} [get]
func (c *EnrollmentController) GetEnrollmentsByStudentID(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId", "Invalid student ID")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetEnrollmentsByStudentID(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// UpdateEnrollment updates an existing enrollment
// @Summary Update an enrollment
// @Description Overwrites the student reference and course name; date and status are untouched
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.EnrollmentRequest true "Updated enrollment information"
// @Success 200 {object} dto.EnrollmentResponse "Enrollment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Inactive student or invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment or student not found"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid enrollment ID")
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, &req, err)
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollment(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// CancelEnrollment cancels an enrollment
// @Summary Cancel an enrollment
// @Description Sets the status to CANCELLED; cancelling twice leaves the same outcome
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse "Enrollment cancelled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 503 {object} dto.ErrorResponse "Student service unreachable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/cancel [patch]
func (c *EnrollmentController) CancelEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid enrollment ID")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.CancelEnrollment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}

// DeleteEnrollment deletes an enrollment
// @Summary Delete an enrollment
// @Description Deletes an enrollment regardless of its status
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 204 "Enrollment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Invalid enrollment ID")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
