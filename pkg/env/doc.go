// Package env provides configuration from environment, config file and
// command line flags.
package env
