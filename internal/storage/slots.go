package storage

import (
	"encoding/json"
	"errors"
	"reflect"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/alexgomez/lavafix/internal/logging"
)

// Slot names for the three persisted collections. Each slot holds the whole
// collection as one JSON value; every save is a full overwrite. With two
// processes open at once the last writer wins silently; this layer does not
// try to detect that.
const (
	SlotClients       = "clients"
	SlotPayments      = "payments"
	SlotNotifications = "notifications"
)

// LoadSlot deserializes a collection slot into v. A missing slot, a read
// failure, or corrupt JSON all leave v untouched so the caller starts from an
// empty collection. Failures are logged, never surfaced.
func (d *DB) LoadSlot(slot string, v any) {
	var data []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(slot))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = make([]byte, len(val))
			copy(data, val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn("slot read failed, starting empty", "slot", slot, "error", err)
		}
		return
	}

	// Decode into a fresh value first. json.Unmarshal fills slices element
	// by element before reporting a type error, and a half-decoded
	// collection must not leak out.
	tmp := reflect.New(reflect.TypeOf(v).Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		logging.Warn("slot holds corrupt data, starting empty", "slot", slot, "error", err)
		return
	}
	reflect.ValueOf(v).Elem().Set(tmp.Elem())
}

// SaveSlot serializes the full collection and overwrites the slot.
func (d *DB) SaveSlot(slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(slot), data)
	})
}
