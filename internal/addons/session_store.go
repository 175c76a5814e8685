package addons

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

// HashStore is the subset of hash operations the session store needs.
type HashStore interface {
	HSet(ctx context.Context, key, field, value string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	AddonSessionKey(productID, sessionID string) string
}

// SessionStore persists one addon Selection per product view as a hash whose
// fields are the flat "groupId::itemId" keys. Each operation writes or deletes
// a single field, mirroring the in-memory merge-only contract.
type SessionStore struct {
	hashes HashStore
	ttl    time.Duration
}

// NewSessionStore builds a store; ttl <= 0 disables expiry refresh.
func NewSessionStore(hashes HashStore, ttl time.Duration) (*SessionStore, error) {
	if hashes == nil {
		return nil, fmt.Errorf("hash store required")
	}
	return &SessionStore{hashes: hashes, ttl: ttl}, nil
}

// Load returns the stored selection for a view.
func (s *SessionStore) Load(ctx context.Context, product catalog.Product, sessionID string) (*Selection, error) {
	raw, err := s.hashes.HGetAll(ctx, s.key(product, sessionID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load addon session")
	}
	entries := make([]Entry, 0, len(raw))
	for field, value := range raw {
		if _, _, ok := SplitKey(field); !ok {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return Restore(product, entries), nil
}

// Select applies a click and stores only the touched field.
func (s *SessionStore) Select(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string) (*Selection, error) {
	sel, err := s.Load(ctx, product, sessionID)
	if err != nil {
		return nil, err
	}
	present, err := sel.Select(groupID, itemID)
	if err != nil {
		return nil, err
	}
	if present {
		entry, _ := sel.Get(groupID, itemID)
		err = s.put(ctx, product, sessionID, entry)
	} else {
		err = s.del(ctx, product, sessionID, groupID, itemID)
	}
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// SetPlacement rewrites the placement of one stored entry.
func (s *SessionStore) SetPlacement(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string, placement enums.Placement) (*Selection, error) {
	sel, err := s.Load(ctx, product, sessionID)
	if err != nil {
		return nil, err
	}
	entry, err := sel.SetPlacement(groupID, itemID, placement)
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, product, sessionID, entry); err != nil {
		return nil, err
	}
	return sel, nil
}

// Remove deletes one stored entry.
func (s *SessionStore) Remove(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string) (*Selection, error) {
	sel, err := s.Load(ctx, product, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Remove(groupID, itemID)
	if err := s.del(ctx, product, sessionID, groupID, itemID); err != nil {
		return nil, err
	}
	return sel, nil
}

// Clear drops every stored entry of a view.
func (s *SessionStore) Clear(ctx context.Context, product catalog.Product, sessionID string) error {
	if err := s.hashes.Del(ctx, s.key(product, sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear addon session")
	}
	return nil
}

func (s *SessionStore) put(ctx context.Context, product catalog.Product, sessionID string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode addon entry")
	}
	key := s.key(product, sessionID)
	if err := s.hashes.HSet(ctx, key, Key(entry.GroupID, entry.OptionID), string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store addon entry")
	}
	return s.touch(ctx, key)
}

func (s *SessionStore) del(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string) error {
	key := s.key(product, sessionID)
	if err := s.hashes.HDel(ctx, key, Key(groupID, itemID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete addon entry")
	}
	return s.touch(ctx, key)
}

func (s *SessionStore) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.hashes.Expire(ctx, key, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh addon session ttl")
	}
	return nil
}

func (s *SessionStore) key(product catalog.Product, sessionID string) string {
	return s.hashes.AddonSessionKey(product.ID, sessionID)
}
