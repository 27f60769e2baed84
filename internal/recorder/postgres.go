package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// NewPostgresRecorder connects to PostgreSQL, waiting for the server to
// accept connections, and runs migrations.
func NewPostgresRecorder(dsn string) (*SQLRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r, err := newSQLRecorder(db, postgresDialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("[INFO] postgres recorder opened")
	return r, nil
}
