package manifest

import "errors"

var (
	// ErrAliasCollision indicates two distinct documents claimed the same alias key
	// while the builder runs with CollisionError.
	ErrAliasCollision = errors.New("alias key claimed by more than one document")

	// ErrDanglingAlias indicates a serialized lookup entry points at a document
	// that is not part of the artifact.
	ErrDanglingAlias = errors.New("alias key targets unknown document")

	// ErrUnknownPath indicates a serialized path list entry has no document.
	ErrUnknownPath = errors.New("path has no document entry")

	// ErrDuplicatePath indicates a serialized path list repeats an entry.
	ErrDuplicatePath = errors.New("duplicate path in manifest")
)
