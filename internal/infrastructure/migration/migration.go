// Package migration applies the embedded goose SQL scripts that create the
// tables behind the SQL record store medium.
package migration

import (
	"embed"
	"fmt"
)

//go:embed scripts/*.sql
var scripts embed.FS

const scriptsDir = "scripts"

// Dialect maps a storage driver name to the goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("driver %q has no SQL migrations", driver)
	}
}
