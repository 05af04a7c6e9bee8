package sqlconnect

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"myfintrack/pkg/utils"
)

var DB *sql.DB

// ConnectDb opens the MySQL pool from DB_* env vars and runs pending
// migrations. The ping is retried (DB_CONNECT_ATTEMPTS, default 30, two
// seconds apart) so the API can start before the database container is
// ready.
func ConnectDb() error {
	if DB != nil {
		return nil
	}

	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	host := os.Getenv("DB_HOST")

	connectionString := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true", user, password, host, port, dbname)

	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		return fmt.Errorf("failed to open DB connection: %w", err)
	}

	attempts := 30
	if n, err := strconv.Atoi(os.Getenv("DB_CONNECT_ATTEMPTS")); err == nil && n > 0 {
		attempts = n
	}

	for i := 1; ; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if i >= attempts {
			db.Close()
			return fmt.Errorf("failed to ping DB after %d attempts: %w", attempts, err)
		}
		utils.Logger.Infof("Waiting for database... (attempt %d/%d)", i, attempts)
		time.Sleep(2 * time.Second)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = db
	utils.Logger.Info("Connected to MySQL")
	return nil
}
