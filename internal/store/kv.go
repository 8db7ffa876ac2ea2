// Package store provides the durable key-value records behind the
// preference, saved-set, status and digest stores.
//
// Every backend stores opaque JSON documents under string keys. Decoding and
// the "malformed means absent" rule live in the typed stores, not here.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// KV is a durable key-value record store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMulti writes every entry or none of them.
	SetMulti(ctx context.Context, entries map[string][]byte) error
	// Keys lists the keys that start with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

const keyNamespace = "jobtracker"

// Record names under a user's namespace.
const (
	RecordPreferences   = "preferences"
	RecordSaved         = "saved"
	RecordStatuses      = "statuses"
	RecordStatusHistory = "status-history"
	recordDigestPrefix  = "digest:"
)

// Key returns the storage key of a user's record.
func Key(userID, record string) string {
	return keyNamespace + ":" + userID + ":" + record
}

// DigestKey returns the storage key of a user's digest for a YYYY-MM-DD date.
func DigestKey(userID, date string) string {
	return Key(userID, recordDigestPrefix+date)
}

// UsersWith lists the user ids that have the given record stored.
func UsersWith(ctx context.Context, kv KV, record string) ([]string, error) {
	keys, err := kv.Keys(ctx, keyNamespace+":")
	if err != nil {
		return nil, err
	}
	suffix := ":" + record
	var users []string
	for _, k := range keys {
		if !strings.HasSuffix(k, suffix) {
			continue
		}
		user := strings.TrimSuffix(strings.TrimPrefix(k, keyNamespace+":"), suffix)
		if user == "" || strings.Contains(user, ":") {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}
