// Package shared provides common utilities and test helpers used
// across the pipeline codebase. It is a home for functionality that
// does not belong to any specific domain or architectural layer.
//
// The testutil subpackage provides a buffered slog handler plus
// assertions over captured log records, and raw-record fixture
// builders used by multiple package test suites.
//
// This package must not contain business logic or depend on other
// internal packages beyond the domain contracts.
package shared
