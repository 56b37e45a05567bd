// Package config provides configuration structures and utilities for the
// log analysis reports. It defines the database connection target, the
// report options and the YAML file and .env sources they are read from.
package config
