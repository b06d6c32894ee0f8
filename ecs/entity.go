package ecs

import "fmt"

// Entity packs a slot id in the low 32 bits and the slot's generation in
// the high 32 bits. Slot ids start at 1, so the zero Entity never refers to
// a live entity. The packed value is what crosses package boundaries as a
// raw uint64 (see EntityBits).
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// EntityBits returns the packed value. It lets an Entity be handed to
// packages that cannot import ecs, such as audio play events.
func (e Entity) EntityBits() uint64 { return uint64(e) }

// Valid reports whether e names a slot at all. It says nothing about
// whether that slot is still alive; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}

func (e Entity) String() string {
	if !e.Valid() {
		return "entity(none)"
	}
	return fmt.Sprintf("entity(%d:%d)", e.id(), e.generation())
}
