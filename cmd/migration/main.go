package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"gitlab.com/medicare-hospital/patients-service/internal/service"
)

// Usage example on the command line:
// > DB_HOST=localhost DB_USER=medicare DB_PASSWORD=secret go run main.go -file=../../scripts/database.sql
func main() {
	cfg := service.LoadConfig()
	sqlDB := service.CreateDatabase(cfg)
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	readFile, err := os.Open(*filePtr)
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			db.MustExec(builder.String())
			builder = strings.Builder{}
		}
	}
}
