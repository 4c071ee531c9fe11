// Package config defines the application's configuration structure and the
// loading logic that populates it from config files and environment
// variables. Environment variables take precedence over file values.
package config
