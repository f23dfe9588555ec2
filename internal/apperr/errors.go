package apperr

import "errors"

var (
	ErrCorpusUnreadable = errors.New("corpus unreadable")
	ErrNoDocuments      = errors.New("no main content files found")
	ErrInvalidDocument  = errors.New("invalid document")
)
