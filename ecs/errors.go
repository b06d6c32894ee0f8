package ecs

import "errors"

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrSelfParent           = errors.New("ecs: entity cannot be its own parent")
	ErrHierarchyCycle       = errors.New("ecs: hierarchy cycle")
)
