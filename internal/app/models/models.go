package models

// EnrollmentStatus defines the enrollment lifecycle status
type EnrollmentStatus string

// Enrollment status constants
const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCancelled EnrollmentStatus = "CANCELLED"
)
