package errors

// Package errors provides sentinel errors for content discovery operations.

import "errors"

var (
	// ErrContentRootNotDir indicates the configured content root exists but is not a directory.
	ErrContentRootNotDir = errors.New("content root is not a directory")

	// ErrDocsDirWalkFailed indicates filesystem traversal of the content root failed.
	ErrDocsDirWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading content from a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the content root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
