package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/todo-manager/config"
)

// EnsureDatabase connects to the postgres maintenance database and creates
// the application database if it does not exist yet. GORM's AutoMigrate can
// create tables but not the database itself.
func EnsureDatabase() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	connectStr := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=postgres port=%s sslmode=%s",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", getEnv.DB_NAME).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	log.Println("Database does not exist, creating:", getEnv.DB_NAME)
	// CREATE DATABASE cannot be parameterized; the name comes from our own env
	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", getEnv.DB_NAME))
	return err
}
