package shared

import "time"

// BaseEntity carries the serial key and the timestamps every table has.
// ID stays zero until the row is inserted.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps both timestamps with the current time
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

// IsNew reports whether the entity has been inserted yet
func (e *BaseEntity) IsNew() bool { return e.ID == 0 }

// Touch moves UpdatedAt to now
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }

// BaseAggregateRoot adds the optimistic lock counter. Version starts at 1
// and goes up on every mutation.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion records one mutation
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// SoftDeletable marks rows that are hidden instead of removed, so the
// quotations that reference them keep rendering.
type SoftDeletable struct {
	DeletedAt *time.Time
}

func (s SoftDeletable) IsDeleted() bool { return s.DeletedAt != nil }
