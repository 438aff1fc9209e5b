// Package errors provides the classified error type shared by the docsite
// build and serve phases.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (how bad it is), a retry strategy and free-form context. Errors are created
// through the fluent ErrorBuilder:
//
//	err := errors.ManifestError("alias collision").
//		WithContext("key", key).
//		WithContext("winner", rawPath).
//		Build()
//
// The CLI and HTTP adapters translate classified errors into exit codes and
// HTTP status codes respectively.
package errors
