// Package cid mints short, stable identifiers for assembly components and
// constraints, replacing the original implementation's shared_ptr identity
// with an explicit handle suitable for arena indexing.
package cid

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// ID is an opaque, comparable component or constraint handle.
type ID string

// New mints a fresh random ID: 16 bytes from a UUIDv4, base58-encoded for a
// short, URL- and log-safe token.
func New() ID {
	u := uuid.New()
	return ID(base58.Encode(u[:]))
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }
