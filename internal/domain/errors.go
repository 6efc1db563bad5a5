package domain

import "errors"

var (
	// ErrEmptyDocument is returned when a document yields no readable text.
	ErrEmptyDocument = errors.New("document contains no readable text")
	// ErrSemanticNotPermitted is returned when hybrid mode is requested
	// without the semantic capability.
	ErrSemanticNotPermitted = errors.New("semantic analysis not permitted")
	// ErrNoDocuments is returned when a batch check receives no documents.
	ErrNoDocuments = errors.New("no documents supplied")
)
