package domain

// Genre is a reference entity mirrored from the remote catalog.
//
// RemoteID is the stable id assigned by the remote document collection and is
// unique within the local table. The local genre table is a strict mirror of
// the remote catalog after a successful sync; genres are never invented
// locally and are read-only outside the sync engine.
type Genre struct {
	RemoteID string `json:"remote_id"`
	Label    string `json:"label"`
}
