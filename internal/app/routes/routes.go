package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/academico/internal/app/controllers"
)

// SetupStudentRoutes configures the student service routes
func SetupStudentRoutes(router *gin.Engine, studentController *controllers.StudentController) {
	students := router.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	registerHealthRoute(router)
}

// SetupEnrollmentRoutes configures the enrollment service routes
func SetupEnrollmentRoutes(router *gin.Engine, enrollmentController *controllers.EnrollmentController) {
	enrollments := router.Group("/enrollments")
	{
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.GET("", enrollmentController.GetAllEnrollments)
		enrollments.GET("/student/:studentId", enrollmentController.GetEnrollmentsByStudentID)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
		enrollments.PUT("/:id", enrollmentController.UpdateEnrollment)
		enrollments.PATCH("/:id/cancel", enrollmentController.CancelEnrollment)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}

	registerHealthRoute(router)
}

// registerHealthRoute adds the public health check endpoint
func registerHealthRoute(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
