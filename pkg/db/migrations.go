package db

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Migration is one embedded SQL file
type Migration struct {
	Filename string
	SQL      string
}

// PendingMigrations returns the .sql files under dir that are not in applied, sorted by name
func PendingMigrations(fsys fs.FS, dir string, applied map[string]bool) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") && !applied[entry.Name()] {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	pending := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		pending = append(pending, Migration{Filename: name, SQL: string(content)})
	}
	return pending, nil
}
