// Package errors provides foundational, type-safe error primitives used across vitedoc.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, input, filesystem, render, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Retry hint for the caller driving a run
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for exit codes and error presentation
//
// Example usage:
//
//	err := errors.FileSystemError("failed to write file").
//		WithContext("path", target).
//		WithCause(originalErr).
//		Build()
package errors
