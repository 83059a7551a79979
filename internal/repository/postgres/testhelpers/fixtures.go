package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// InsertStamp вставляет штамп напрямую, минуя репозиторий, и возвращает его ID.
// Нужен для данных "как в старой базе": сырые страны, явный created_at.
func InsertStamp(db *sql.DB, city, country string, createdAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO stamps (id, city, country, country_raw, created_at) VALUES ($1, $2, $3, $3, $4)`,
		id, city, country, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert stamp %s/%s: %w", city, country, err)
	}
	return id, nil
}
