package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`                       // Unique identifier for the student record
	Name      string    `json:"name" db:"name" example:"Ana Silva"`           // Student's full name
	Email     string    `json:"email" db:"email" example:"ana@x.com"`         // Unique email address
	CPF       string    `json:"cpf" db:"cpf" example:"12345678901"`           // Unique national ID, 11 digits
	BirthDate time.Time `json:"birthDate" db:"birth_date"`                    // Date of birth, must be in the past
	Active    bool      `json:"active" db:"active" example:"true"`            // Whether the student may be enrolled
}
