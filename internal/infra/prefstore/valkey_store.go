package prefstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/darkroompro/devcalc/internal/domain/preferences"
)

// ValkeyStore persists preferences as JSON values in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "darkroom"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, profile string) (preferences.Preferences, bool, error) {
	cmd := s.client.B().Get().Key(s.profileKey(profile)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return preferences.Preferences{}, false, nil
		}
		return preferences.Preferences{}, false, err
	}
	var prefs preferences.Preferences
	if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
		return preferences.Preferences{}, false, err
	}
	return prefs, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, prefs preferences.Preferences, ttl time.Duration) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.profileKey(prefs.Profile)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) profileKey(profile string) string {
	return fmt.Sprintf("%s:prefs:%s", s.prefix, profile)
}

var _ preferences.Store = (*ValkeyStore)(nil)
