package models

import "time"

// Enrollment defines the enrollment model based on the 'enrollments' table.
// StudentID references a record owned by the student service; there is no
// foreign key, the reference is validated remotely at write time only.
type Enrollment struct {
	ID             int64            `json:"id" db:"id" example:"1"`                     // Unique identifier for the enrollment record
	StudentID      int64            `json:"studentId" db:"student_id" example:"5"`      // ID of the student in the student service
	CourseName     string           `json:"courseName" db:"course_name"`                // Course name, free text up to 100 chars
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`        // Set at creation, never changed afterwards
	Status         EnrollmentStatus `json:"status" db:"status" example:"ACTIVE"`        // ACTIVE or CANCELLED
}
