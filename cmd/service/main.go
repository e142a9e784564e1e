package main

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"gitlab.com/medicare-hospital/patients-service/internal/mail"
	"gitlab.com/medicare-hospital/patients-service/internal/service"
)

// Usage example on the command line:
// > PORT=3000 DB_HOST=localhost DB_USER=medicare DB_PASSWORD=secret EMAIL_USER=frontdesk@medicare.example EMAIL_PASS=secret go run main.go
func main() {
	cfg := service.LoadConfig()
	sqlDB := service.CreateDatabase(cfg)

	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		logrus.Fatal("could not parse SMTP_PORT: ", err)
	}
	mailer := mail.NewClient(cfg.SMTPHost, smtpPort, cfg.EmailUser, cfg.EmailPass)

	server := service.NewServer(sqlDB, mailer, cfg.UploadDir)
	server.EnsureSchema()
	server.EnsureUploadDir()
	router := server.SetupHttpRouter()
	logrus.Info("server running on port ", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
