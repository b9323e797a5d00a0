// Package store persists named values for the instruments.
//
// Values are grouped by namespace (one per concern, e.g. "settings" or
// "state") and encoded with msgpack, so any plain Go value round-trips
// with its type intact.
package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// KV is a namespaced key/value store.
type KV interface {
	// Get decodes the value stored under ns/key into v. found is false when
	// no value exists; v is then left untouched.
	Get(ns, key string, v any) (found bool, err error)

	// Put stores v under ns/key.
	Put(ns, key string, v any) error

	// Delete removes ns/key. Deleting a missing key is not an error.
	Delete(ns, key string) error

	// Close releases the store.
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// ErrCorrupt is wrapped by Get when a stored value cannot be decoded into v.
var ErrCorrupt = errors.New("store: corrupt value")

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode value: %w: %w", ErrCorrupt, err)
	}
	return nil
}

// Prefs is a view of one namespace with typed getters that fall back to a
// default when the key is missing or unreadable.
type Prefs struct {
	kv KV
	ns string
}

// NewPrefs returns a Prefs for ns.
func NewPrefs(kv KV, ns string) *Prefs {
	return &Prefs{kv: kv, ns: ns}
}

// Float returns the float stored under key, or def.
func (p *Prefs) Float(key string, def float64) float64 {
	v := def
	if found, err := p.kv.Get(p.ns, key, &v); err != nil || !found {
		return def
	}
	return v
}

// Int returns the int stored under key, or def.
func (p *Prefs) Int(key string, def int) int {
	v := def
	if found, err := p.kv.Get(p.ns, key, &v); err != nil || !found {
		return def
	}
	return v
}

// Bool returns the bool stored under key, or def.
func (p *Prefs) Bool(key string, def bool) bool {
	v := def
	if found, err := p.kv.Get(p.ns, key, &v); err != nil || !found {
		return def
	}
	return v
}

// Put stores v under key.
func (p *Prefs) Put(key string, v any) error {
	return p.kv.Put(p.ns, key, v)
}

// Delete removes key.
func (p *Prefs) Delete(key string) error {
	return p.kv.Delete(p.ns, key)
}
