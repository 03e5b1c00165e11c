package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"defaulter-fixtures-go/attendance"
	"defaulter-fixtures-go/db"
	"defaulter-fixtures-go/models"
)

// APIHandler holds the dependencies for API handlers, like the Redis service
type APIHandler struct {
	RedisService *db.RedisService
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(service *db.RedisService) *APIHandler {
	return &APIHandler{
		RedisService: service,
	}
}

// SetupRouter registers every API route on a new gin engine
func SetupRouter(h *APIHandler) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/cohorts", h.GetAllCohorts)
		api.GET("/cohorts/:cohortId", h.GetCohortByID)
		api.GET("/cohorts/:cohortId/students", h.GetStudentsByCohort)
		api.GET("/cohorts/:cohortId/random-student", h.GetRandomStudent)

		api.POST("/import/attendance", h.ImportAttendance)

		api.GET("/ping", PingHandler)
	}
	return router
}

// GetAllCohorts handles GET /api/cohorts
func (h *APIHandler) GetAllCohorts(c *gin.Context) {
	cohorts, err := h.RedisService.GetAllCohorts()
	if err != nil {
		log.Printf("Error in GetAllCohorts handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cohorts"})
		return
	}
	if cohorts == nil {
		c.JSON(http.StatusOK, []models.Cohort{})
		return
	}
	c.JSON(http.StatusOK, cohorts)
}

// GetCohortByID handles GET /api/cohorts/:cohortId
func (h *APIHandler) GetCohortByID(c *gin.Context) {
	cohortID := c.Param("cohortId")
	if cohortID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cohort ID is required"})
		return
	}

	cohort, err := h.RedisService.GetCohortByID(cohortID)
	if err != nil {
		log.Printf("Error in GetCohortByID handler for ID %s: %v", cohortID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cohort details"})
		return
	}
	if cohort == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cohort not found"})
		return
	}

	c.JSON(http.StatusOK, cohort)
}

// GetStudentsByCohort handles GET /api/cohorts/:cohortId/students
func (h *APIHandler) GetStudentsByCohort(c *gin.Context) {
	cohortID := c.Param("cohortId")

	exists, err := h.RedisService.CohortExists(cohortID)
	if err != nil {
		log.Printf("Error checking cohort existence for ID %s: %v", cohortID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify cohort"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cohort not found"})
		return
	}

	students, err := h.RedisService.GetStudentsByCohortID(cohortID)
	if err != nil {
		log.Printf("Error in GetStudentsByCohort handler for ID %s: %v", cohortID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve students for the cohort"})
		return
	}
	if students == nil {
		students = []models.Student{}
	}

	c.JSON(http.StatusOK, students)
}

// GetRandomStudent handles GET /api/cohorts/:cohortId/random-student
func (h *APIHandler) GetRandomStudent(c *gin.Context) {
	cohortID := c.Param("cohortId")

	cohort, err := h.RedisService.GetCohortByID(cohortID)
	if err != nil {
		log.Printf("Error loading cohort %s for random pick: %v", cohortID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify cohort"})
		return
	}
	switch {
	case cohort == nil:
		c.JSON(http.StatusNotFound, gin.H{"message": "Cohort not found"})
		return
	case cohort.StudentCount == 0:
		c.JSON(http.StatusNotFound, gin.H{"message": "No students found in this cohort"})
		return
	}

	student, err := h.RedisService.GetRandomStudent(cohortID)
	if err != nil {
		log.Printf("Error in GetRandomStudent handler for ID %s: %v", cohortID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get random student"})
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No students found in this cohort"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cohort": cohort, "student": student})
}

// ImportAttendance handles POST /api/import/attendance.
// The upload is parsed and its defaulters returned; nothing is stored.
func (h *APIHandler) ImportAttendance(c *gin.Context) {
	threshold := attendance.DefaulterThreshold
	if raw := c.PostForm("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid 'threshold': must be a number in (0, 100]"})
			return
		}
		threshold = v
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received attendance sheet upload: %s", header.Filename)

	records, err := attendance.ReadSheet(file)
	if err != nil {
		log.Printf("Error reading attendance sheet %s: %v", header.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Failed to read attendance sheet: " + err.Error()})
		return
	}

	defaulters := attendance.Defaulters(records, attendance.Filter{Threshold: threshold})

	c.JSON(http.StatusOK, gin.H{
		"message":        "Import successful",
		"filename":       header.Filename,
		"recordCount":    len(records),
		"threshold":      threshold,
		"defaulters":     defaulters,
		"defaulterCount": len(defaulters),
	})
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
