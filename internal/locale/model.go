package locale

import "errors"

var ErrResourceNotFound = errors.New("locale resource not found")

// Resource is a named localized string.
type Resource struct {
	Name  string
	Value string
}
