package parser

import (
	"errors"
	"strings"
)

var (
	ErrNotJSON   = errors.New("content is not valid json")
	ErrNotYAML   = errors.New("content is not valid yaml")
	ErrNotObject = errors.New("content is not a plain object")
)

// Error is a validation failure at a position in the document.
type Error struct {
	Path   []string
	Reason string
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return "object " + e.Reason
	}
	return strings.Join(e.Path, "/") + " " + e.Reason
}
