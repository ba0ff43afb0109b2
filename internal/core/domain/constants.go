package domain

import "errors"

var (
	ErrEmptyImage         = errors.New("cannot compute hash of an empty image")
	ErrUnknownOrientation = errors.New("unknown orientation")
	ErrEmptySource        = errors.New("source has no image url, target or html")
	ErrSourceUnavailable  = errors.New("source produced no image")
)
