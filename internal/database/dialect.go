package database

import (
	"fmt"
	"strings"
)

// Supported driver names, as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// dialect holds the SQL fragments that differ between engines.
type dialect struct {
	// name is the database/sql driver name.
	name string

	// dayExpr truncates log.time to a calendar date rendered as YYYY-MM-DD.
	dayExpr string
}

var dialects = map[string]dialect{
	DriverPostgres: {
		name:    DriverPostgres,
		dayExpr: "to_char(log.time::date, 'YYYY-MM-DD')",
	},
	DriverSQLite: {
		name:    DriverSQLite,
		dayExpr: "date(log.time)",
	},
}

// lookupDialect returns the dialect for a driver name.
func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q (supported: %s, %s)",
			driver, DriverPostgres, DriverSQLite)
	}
	return d, nil
}

// SupportedDriver reports whether driver can be passed to Open.
func SupportedDriver(driver string) bool {
	_, err := lookupDialect(driver)
	return err == nil
}
