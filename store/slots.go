package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed width so updated_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Slot is one stored save.
type Slot struct {
	Name      string
	Version   string
	Data      []byte
	UpdatedAt time.Time
}

// SlotStore reads and writes save slots.
type SlotStore struct {
	db  DBTX
	now func() time.Time
}

// NewSlotStore creates a SlotStore on the given connection.
func NewSlotStore(conn DBTX) *SlotStore {
	return &SlotStore{db: conn, now: time.Now}
}

// Put creates or replaces a slot.
func (s *SlotStore) Put(ctx context.Context, name, version string, data []byte) error {
	if name == "" {
		return fmt.Errorf("put slot: empty slot name")
	}
	query := `INSERT INTO save_slots (slot, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, name, version, data, s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upserting save slot %s: %w", name, err)
	}
	return nil
}

// Get returns a slot, or ErrNotFound.
func (s *SlotStore) Get(ctx context.Context, name string) (*Slot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT slot, version, data, updated_at FROM save_slots WHERE slot = ?`, name)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("save slot %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning save slot %s: %w", name, err)
	}
	return slot, nil
}

// List returns every slot, most recently updated first. Data is not loaded.
func (s *SlotStore) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, version, updated_at FROM save_slots ORDER BY updated_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("listing save slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var (
			slot      Slot
			updatedAt string
		)
		if err := rows.Scan(&slot.Name, &slot.Version, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning save slot: %w", err)
		}
		if slot.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at of %s: %w", slot.Name, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating save slots: %w", err)
	}
	return slots, nil
}

// Delete removes a slot, or returns ErrNotFound.
func (s *SlotStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting save slot %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting save slot %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("save slot %s: %w", name, ErrNotFound)
	}
	return nil
}

func scanSlot(row *sql.Row) (*Slot, error) {
	var (
		slot      Slot
		updatedAt string
	)
	if err := row.Scan(&slot.Name, &slot.Version, &slot.Data, &updatedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	slot.UpdatedAt = t
	return &slot, nil
}
