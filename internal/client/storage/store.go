// Package storage is the client's persistent key-value store.
//
// Values are opaque byte strings; structured values go through SetJSON and
// GetJSON. A missing key is not an error: Get returns (nil, nil) and Remove
// is a no-op. Every failure of the underlying primitive is reported as a
// *common.StorageError.
//
// Writes to the same key race with last-write-wins semantics. Update runs a
// group of writes atomically, which the session holder uses to keep the
// token and the profile together.
package storage

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/natman/internal/common"
)

// Keys used by the client.
const (
	KeyUserToken = "userToken"
	KeyUserData  = "userData"
)

// KV is the basic key-value contract.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Store is a KV with atomic batches and a lifecycle.
type Store interface {
	KV
	// Update runs fn against a transactional view. If fn returns an error
	// none of its writes are kept.
	Update(ctx context.Context, fn func(ctx context.Context, tx KV) error) error
	Close() error
}

// SetJSON serializes v and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &common.StorageError{Op: "encode", Key: key, Err: err}
	}
	return kv.Set(ctx, key, data)
}

// GetJSON loads key into v. found is false when the key is absent, in which
// case v is left untouched.
func GetJSON(ctx context.Context, kv KV, key string, v any) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return false, &common.StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}
