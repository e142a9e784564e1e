package service

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// log is the structured logger shared by all handlers.
var log = logrus.New()

// Mailer sends the registration confirmation email. The returned flag only
// reports the outcome; a failed send never fails the registration.
type Mailer interface {
	SendRegistrationEmail(to string, name string) bool
}

// Server bundles the database pool, the mail client and the uploads
// directory. All HTTP handlers are methods on it, so there is no package-wide
// mutable state shared between requests.
type Server struct {
	db        *sqlx.DB
	mailer    Mailer
	uploadDir string

	insertPatient        *sqlx.NamedStmt
	selectPatientWhereId *sqlx.Stmt
	deletePatientWhereId *sqlx.Stmt
	insertContactMessage *sqlx.NamedStmt
}

// CreateDatabase initializes and returns a database connection pool. The
// connection parameters are taken from the configuration. An unreachable
// database is logged but does not stop the service: requests fail
// individually until the database comes up, which lets the database start
// after the application.
func CreateDatabase(cfg Config) *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Error("database connection failed: ", err)
	} else {
		log.Info("connected to MySQL")
	}
	return sqlDB
}

// NewServer wraps the specified sql database and prepares all hot-path
// statements. The database argument can be a real database for production use
// or a mock database within unit tests.
func NewServer(sqlDB *sql.DB, mailer Mailer, uploadDir string) *Server {
	s := &Server{
		db:        sqlx.NewDb(sqlDB, "mysql"),
		mailer:    mailer,
		uploadDir: uploadDir,
	}

	// Prepared statements offer a significant speed increase if executed many times.
	var err error
	s.insertPatient, err = s.db.PrepareNamed(`
		INSERT INTO patients (name, email, phone, profile_picture)
		VALUES (:name, :email, :phone, :profile_picture)
	`)
	if err != nil {
		log.Fatal(err)
	}
	s.selectPatientWhereId, err = s.db.Preparex(`
		SELECT * FROM patients WHERE id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	s.deletePatientWhereId, err = s.db.Preparex(`
		DELETE FROM patients WHERE id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	s.insertContactMessage, err = s.db.PrepareNamed(`
		INSERT INTO contact_messages (name, email, message)
		VALUES (:name, :email, :message)
	`)
	if err != nil {
		log.Fatal(err)
	}
	return s
}

// schema is executed at startup so that a fresh database works without a
// separate migration step. Both statements are idempotent.
var schema = []string{`
	CREATE TABLE IF NOT EXISTS patients (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(20) NOT NULL,
		profile_picture VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`, `
	CREATE TABLE IF NOT EXISTS contact_messages (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates the tables if they do not exist yet. Errors are logged
// and not fatal, matching the startup contract of CreateDatabase.
func (s *Server) EnsureSchema() {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			log.Error("table creation error: ", err)
		}
	}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints, the static pages and the read-only uploads mount.
func (s *Server) SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
	} else {
		router = gin.Default()
	}
	router.Use(cors.Default())

	router.POST("/api/contact", s.submitContactMessage)
	router.POST("/api/patients", s.registerPatient)
	router.POST("/api/patients/test", s.registerPatientNoFile)
	router.GET("/api/patients", s.findPatients)
	router.GET("/api/patients/:id", s.findPatientByID)
	router.PUT("/api/patients/:id", s.updatePatientByID)
	router.DELETE("/api/patients/:id", s.deletePatientByID)

	router.StaticFile("/", "public/index.html")
	router.StaticFile("/about.html", "public/about.html")
	router.StaticFile("/services.html", "public/services.html")
	router.StaticFile("/contact.html", "public/contact.html")
	router.Static("/uploads", s.uploadDir)
	return router
}
