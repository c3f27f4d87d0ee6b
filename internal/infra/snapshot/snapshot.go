package snapshot

import (
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
)

// Serialize converts the complete store to YAML.
func Serialize(store *domain.TicketStore) ([]byte, error) {
	return Encode(YAMLCodec{}, store)
}

// Deserialize rebuilds a store from YAML produced by Serialize.
func Deserialize(data []byte) (*domain.TicketStore, error) {
	return Decode(YAMLCodec{}, data, domain.RealClock{})
}

// Encode converts the complete store to bytes with codec.
func Encode(codec domain.Codec, store *domain.TicketStore) ([]byte, error) {
	data, err := codec.Encode(store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode %s snapshot: %w", codec.Format(), err)
	}
	return data, nil
}

// Decode rebuilds a store from bytes with codec.
// Unparseable input and invalid content both yield an error wrapping
// domain.ErrCorruptSnapshot.
func Decode(codec domain.Codec, data []byte, clock domain.Clock) (*domain.TicketStore, error) {
	snap, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCorruptSnapshot, codec.Format(), err)
	}
	return domain.RestoreTicketStore(snap, clock)
}
