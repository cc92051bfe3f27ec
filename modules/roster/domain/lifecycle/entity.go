// Package lifecycle defines the capability model shared by every roster
// entity: statuses, transitions, typed capability interfaces and the
// repository contracts the orchestration layer requires from storage.
package lifecycle

import (
	"fmt"

	"github.com/google/uuid"
)

type EntityType string

const (
	TypeWrestler EntityType = "wrestler"
	TypeManager  EntityType = "manager"
	TypeReferee  EntityType = "referee"
	TypeTagTeam  EntityType = "tagteam"
	TypeStable   EntityType = "stable"
)

// Entity is any roster member or group participating in lifecycle
// transitions. Entities are owned by the persistence layer; the orchestration
// layer borrows references for the duration of one operation and never
// mutates them.
type Entity interface {
	ID() uuid.UUID
	Type() EntityType
	Name() string
	Status() Status
}

// Key identifies an entity across heterogeneous collections.
type Key struct {
	Type EntityType
	ID   uuid.UUID
}

func KeyOf(e Entity) Key {
	return Key{Type: e.Type(), ID: e.ID()}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Type, k.ID)
}
