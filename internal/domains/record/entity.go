package record

import "time"

// Entity is implemented by every managed resource. IDs are opaque strings.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Normalizer trims and derives fields before validation (slugs, tags, defaults).
type Normalizer interface {
	Normalize()
}

// Validator reports invalid input. Errors are surfaced to the client as 400.
type Validator interface {
	Validate() error
}

// CreateHook runs right before a record is inserted.
type CreateHook interface {
	BeforeCreate(now time.Time)
}

// UpdateHook runs right before a record is persisted by Update.
type UpdateHook interface {
	BeforeUpdate(now time.Time)
}

// Guard restores server-managed fields (counters, workflow state, upload
// references) from the stored record after a PUT body has been applied.
type Guard[T any] interface {
	Guard(stored *T)
}
