package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/medicare-hospital/patients-service/internal/model"
)

// contactRequest carries the fields of a contact form submission.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitContactMessage validates and stores an inquiry from the contact form.
// Unlike patient registrations there is no uniqueness constraint, so repeated
// submissions all succeed.
//
// Example REST API call:
//
//	> curl http://localhost:3000/api/contact --request "POST" --header "Content-Type: application/json" --data '{"name": "Jane", "email": "jane@example.com", "message": "hi"}'
func (s *Server) submitContactMessage(c *gin.Context) {
	var submitted contactRequest
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if submitted.Name == "" || submitted.Email == "" || submitted.Message == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required"})
		return
	}

	message := model.ContactMessage{
		Name:    submitted.Name,
		Email:   submitted.Email,
		Message: submitted.Message,
	}
	if _, err := s.insertContactMessage.Exec(&message); err != nil {
		log.Error("contact db error: ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"message": "Message sent successfully!"})
}
