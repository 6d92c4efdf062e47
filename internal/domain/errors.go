package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidParent       = errors.New("invalid parent")
	ErrSelfDependency      = errors.New("item cannot depend on itself")
	ErrAncestryViolation   = errors.New("dependency between ancestor and descendant")
	ErrDependencyCycle     = errors.New("dependency would create a cycle")
	ErrDuplicateDependency = errors.New("dependency already exists")
	ErrInvalidItem         = errors.New("invalid item")
)
