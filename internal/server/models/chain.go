package models

// OwnedObject is an on-chain object held by a wallet, as reported by the
// fullnode.
type OwnedObject struct {
	ObjectID string `json:"object_id"`
	Version  string `json:"version"`
	Digest   string `json:"digest"`
	Type     string `json:"type"`
}
