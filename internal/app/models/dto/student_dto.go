package dto

import (
	"github.com/lfarias/academico/internal/app/models"
	"github.com/lfarias/academico/internal/pkg/validation"
)

// StudentRequest represents the payload to create or update a student
type StudentRequest struct {
	Name      string `json:"name" binding:"required,min=3,max=100"`
	Email     string `json:"email" binding:"required,email"`
	CPF       string `json:"cpf" binding:"required,cpf"`
	BirthDate string `json:"birthDate" binding:"required,pastdate"`
}

// StudentResponse represents a stored student record
type StudentResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"Ana Silva"`
	Email     string `json:"email" example:"ana@x.com"`
	CPF       string `json:"cpf" example:"12345678901"`
	BirthDate string `json:"birthDate" example:"2000-01-01"`
	Active    bool   `json:"active" example:"true"`
}

// NewStudentResponse converts a student model to its response shape
func NewStudentResponse(student *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		CPF:       student.CPF,
		BirthDate: validation.FormatDate(student.BirthDate),
		Active:    student.Active,
	}
}
