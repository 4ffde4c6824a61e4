// Package mock provides function-field mock implementations of the
// sitescout interfaces for testing.
package mock
