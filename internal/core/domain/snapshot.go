package domain

// Snapshot is the root aggregate: every registered user plus every live
// session token. The whole snapshot is the unit of persistence — each
// operation reads it in full, mutates it in memory and writes it back.
type Snapshot struct {
	// Users maps username → account state.
	Users map[string]*User `json:"users" bson:"users"`
	// Sessions maps bearer token → username. A token stays valid until the
	// snapshot no longer contains it; there is no expiry.
	Sessions map[string]string `json:"sessions" bson:"sessions"`
}

// NewSnapshot returns an empty snapshot with both maps allocated.
func NewSnapshot() Snapshot {
	return Snapshot{
		Users:    make(map[string]*User),
		Sessions: make(map[string]string),
	}
}
