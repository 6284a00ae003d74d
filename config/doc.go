// Package config loads service configuration from the environment.
//
// Settings are read from AMADEUS_-prefixed environment variables, with an
// optional .env file loaded first. Values may reference other environment
// variables with ${VAR} syntax.
package config
