package testhelpers

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// ApplyMigrations накатывает *.up.sql из каталога по порядку имён.
// Схема stamps пересоздаётся с нуля, поэтому сначала откатываются *.down.sql в обратном порядке.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	dir := os.DirFS(migrationsPath)

	downs, err := fs.Glob(dir, "*.down.sql")
	if err != nil {
		return fmt.Errorf("list down migrations: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(downs)))
	if err := execFiles(db, dir, downs); err != nil {
		return err
	}

	ups, err := fs.Glob(dir, "*.up.sql")
	if err != nil {
		return fmt.Errorf("list up migrations: %w", err)
	}
	if len(ups) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	sort.Strings(ups)

	return execFiles(db, dir, ups)
}

func execFiles(db *sql.DB, dir fs.FS, names []string) error {
	for _, name := range names {
		content, err := fs.ReadFile(dir, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
