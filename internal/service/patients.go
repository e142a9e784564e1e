package service

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"gitlab.com/medicare-hospital/patients-service/internal/model"
)

// erDupEntry is the MySQL error number for a violated unique constraint.
const erDupEntry = 1062

// registrationRequest carries the patient fields of a registration.
type registrationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// registerPatient inserts the patient specified in the request into the
// database and sends the confirmation email. JSON requests carry no file;
// everything else is treated as a multipart form with an optional
// profilePicture file field.
//
// Example REST API calls:
//
//	> curl http://localhost:3000/api/patients --request "POST" --header "Content-Type: application/json" --data '{"name": "Jane Doe", "email": "jane@example.com", "phone": "0815"}'
//	> curl http://localhost:3000/api/patients --request "POST" --form name="Jane Doe" --form email="jane@example.com" --form phone="0815" --form profilePicture=@jane.png
func (s *Server) registerPatient(c *gin.Context) {
	if c.ContentType() == "application/json" {
		s.registerPatientNoFile(c)
		return
	}

	// The picture is stored before the fields are checked, so a rejected
	// request can leave an orphaned file behind.
	picture, ok := s.saveProfilePicture(c)
	if !ok {
		return
	}
	submitted := registrationRequest{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}
	s.insertAndNotify(c, submitted, picture)
}

// registerPatientNoFile handles a JSON registration, skipping all file
// handling.
//
// Example REST API call:
//
//	> curl http://localhost:3000/api/patients/test --request "POST" --header "Content-Type: application/json" --data '{"name": "Jane Doe", "email": "jane@example.com", "phone": "0815"}'
func (s *Server) registerPatientNoFile(c *gin.Context) {
	var submitted registrationRequest
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	s.insertAndNotify(c, submitted, nil)
}

// insertAndNotify validates the submitted fields, stores the patient and
// finishes with the best-effort confirmation email. The email outcome is
// reported in the response but never changes the status code.
func (s *Server) insertAndNotify(c *gin.Context, submitted registrationRequest, picture *string) {
	if submitted.Name == "" || submitted.Email == "" || submitted.Phone == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Name, email, and phone are required"})
		return
	}
	patient := model.Patient{
		Name:           submitted.Name,
		Email:          submitted.Email,
		Phone:          submitted.Phone,
		ProfilePicture: picture,
	}
	result, err := s.insertPatient.Exec(&patient)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == erDupEntry {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	emailSent := s.mailer.SendRegistrationEmail(submitted.Email, submitted.Name)
	c.IndentedJSON(http.StatusCreated, gin.H{
		"message":   "Patient registered successfully",
		"id":        id,
		"emailSent": emailSent,
	})
}

// findPatients responds with the list of all patients as JSON, most recently
// registered first.
//
// Example REST API call:
//
//	> curl "http://localhost:3000/api/patients"
func (s *Server) findPatients(c *gin.Context) {
	patients := []model.Patient{}
	err := s.db.Select(&patients, `
		SELECT * FROM patients ORDER BY created_at DESC
	`)
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.IndentedJSON(http.StatusOK, patients)
}

// findPatientByID locates the patient whose ID value matches the id parameter
// of the request URL, then returns that patient as a response.
//
// Example REST API call:
//
//	> curl http://localhost:3000/api/patients/56
func (s *Server) findPatientByID(c *gin.Context) {
	id := c.Param("id")
	if _, errConv := strconv.Atoi(id); errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid id parameter"})
		return
	}

	var patients []model.Patient
	err := s.selectPatientWhereId.Select(&patients, id)
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if len(patients) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, patients[0])
}

// updatePatientByID overwrites name, email and phone of the patient whose ID
// value matches the id parameter of the request URL. The profile picture is
// only overwritten if the form carried a new file, so the two cases use
// different statements. Whether the patient existed is detected from the
// affected row count instead of a prior lookup.
//
// Example REST API call:
//
//	> curl http://localhost:3000/api/patients/56 --request "PUT" --form name="Jane Doe" --form email="jane@example.com" --form phone="0815"
func (s *Server) updatePatientByID(c *gin.Context) {
	id := c.Param("id")
	if _, errConv := strconv.Atoi(id); errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid id parameter"})
		return
	}

	picture, ok := s.saveProfilePicture(c)
	if !ok {
		return
	}
	name := c.PostForm("name")
	email := c.PostForm("email")
	phone := c.PostForm("phone")

	var result sql.Result
	var err error
	if picture != nil {
		result, err = s.db.Exec(`
			UPDATE patients SET name = ?, email = ?, phone = ?, profile_picture = ? WHERE id = ?
		`, name, email, phone, *picture, id)
	} else {
		result, err = s.db.Exec(`
			UPDATE patients SET name = ?, email = ?, phone = ? WHERE id = ?
		`, name, email, phone, id)
	}
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if rowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "Patient updated successfully"})
}

// deletePatientByID deletes the patient whose ID value matches the id
// parameter of the request URL from the database. A stored profile picture is
// not removed from disk.
//
// Example REST API call:
//
//	> curl http://localhost:3000/api/patients/56 --request "DELETE"
func (s *Server) deletePatientByID(c *gin.Context) {
	id := c.Param("id")
	if _, errConv := strconv.Atoi(id); errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid id parameter"})
		return
	}

	result, err := s.deletePatientWhereId.Exec(id)
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("database error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if rowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
