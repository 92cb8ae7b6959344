// Package config loads and validates bookmarkd configuration.
//
// Configuration comes from three layers, later layers winning:
// hardcoded defaults, a YAML file, and BOOKMARKD_* environment variables.
// Validation treats a missing, short, or shared token signing secret as a
// fatal startup error.
package config
