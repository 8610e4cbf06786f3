package dto

import (
	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/pkg/validation"
)

// EnrollmentRequest represents the payload to create or update an enrollment.
// Status and enrollment date are never settable by the caller.
type EnrollmentRequest struct {
	StudentID  int64  `json:"studentId" binding:"required,gt=0"`
	CourseName string `json:"courseName" binding:"required,max=100"`
}

// EnrollmentResponse represents a stored enrollment enriched with the
// student's display name fetched from the student service.
type EnrollmentResponse struct {
	ID             int64  `json:"id" example:"1"`
	StudentID      int64  `json:"studentId" example:"5"`
	StudentName    string `json:"studentName" example:"Ana Silva"`
	CourseName     string `json:"courseName" example:"Algorithms"`
	EnrollmentDate string `json:"enrollmentDate" example:"2026-08-31"`
	Status         string `json:"status" example:"ACTIVE"`
}

// NewEnrollmentResponse combines an enrollment model with the student name
func NewEnrollmentResponse(enrollment *models.Enrollment, studentName string) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:             enrollment.ID,
		StudentID:      enrollment.StudentID,
		StudentName:    studentName,
		CourseName:     enrollment.CourseName,
		EnrollmentDate: validation.FormatDate(enrollment.EnrollmentDate),
		Status:         string(enrollment.Status),
	}
}
