// Package component declares the typed handles an ecs.World stores values
// under, and the audio components built on them.
package component

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
)

// ComponentID keys one component store in a world. Zero is never assigned.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	componentNames  sync.Map // ComponentID -> string
)

// ComponentKind is the typed key of the store holding T values. Every call
// to NewComponentKind yields a distinct store, even for the same T.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	componentNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name returns the Go type stored under k.
func (k ComponentKind[T]) Name() string { return Name(k.id) }

// Name returns the Go type registered for id, for error messages and logs.
func Name(id ComponentID) string {
	if v, ok := componentNames.Load(id); ok {
		return v.(string)
	}
	return "component#" + strconv.FormatUint(uint64(id), 10)
}

// ComponentHandle is declared once per component as a package variable,
// e.g. var TrackComponent = NewComponent[Track]().
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
