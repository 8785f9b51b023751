package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"yadoya/shared/constant"
	"yadoya/shared/logger"
)

// Record is implemented by every stored entity through the embedded
// Model. Identifiers are assigned by the collection, never by callers.
type Record interface {
	GetID() int
	SetID(id int)
}

// Model carries the collection-assigned primary key. Embed it in every
// stored entity struct.
type Model struct {
	ID int `json:"id"`
}

func (m *Model) GetID() int {
	return m.ID
}

func (m *Model) SetID(id int) {
	m.ID = id
}

// Collection is the typed CRUD surface over one JSON collection file.
// T is the pointer type of the stored entity (e.g. *model.Room).
// Every mutation is a whole-collection rewrite: load the full file,
// change the records in memory, atomically write the full file back.
type Collection[T Record] struct {
	store    *Store
	entity   string
	filename string
}

func NewCollection[T Record](store *Store, entity, filename string) Collection[T] {
	return Collection[T]{
		store:    store,
		entity:   entity,
		filename: filename,
	}
}

func (c *Collection[T]) Filename() string {
	return c.filename
}

// Load reads the full collection. A missing file is an empty
// collection; a file that fails to parse is an error, not silent data
// loss.
func (c *Collection[T]) Load(ctx context.Context) (records []T, err error) {
	ctx, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelStoreScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	data, err := os.ReadFile(c.store.path(c.filename))
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to read collection (%s): %w", c.entity, err)
	}

	if err := json.Unmarshal(data, &records); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("corrupt collection file (%s): %w", c.entity, err)
	}

	c.store.noteMaxID(c.filename, maxID(records))

	return records, nil
}

// Save rewrites the full collection, replacing any previous content.
func (c *Collection[T]) Save(ctx context.Context, records []T) (err error) {
	ctx, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelStoreScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	data, err := marshalRecords(records)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to encode collection (%s): %w", c.entity, err)
	}

	if err := AtomicWrite(c.store.path(c.filename), data); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to save collection (%s): %w", c.entity, err)
	}

	return nil
}

// NextID returns 1 for an empty collection, otherwise one greater than
// the highest id ever issued. The store keeps a high-water mark per
// collection (seeded from the file on load), so deleting the record
// with the highest id does not hand that id out again.
func (c *Collection[T]) NextID(records []T) int {
	high := c.store.maxIssuedID(c.filename)
	if m := maxID(records); m > high {
		high = m
	}

	return high + 1
}

func maxID[T Record](records []T) int {
	high := 0

	for _, rec := range records {
		if id := rec.GetID(); id > high {
			high = id
		}
	}

	return high
}

// Insert assigns the next id, appends the record and persists the
// collection. The stored record is returned with its id set.
func (c *Collection[T]) Insert(ctx context.Context, record T) (T, error) {
	lock := c.store.lock(c.filename)
	lock.Lock()
	defer lock.Unlock()

	ctx, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelStoreScopeName, c.entity))
	defer scope.End()

	records, err := c.Load(ctx)
	if err != nil {
		scope.TraceError(err)

		return record, err
	}

	id := c.NextID(records)
	record.SetID(id)
	c.store.noteMaxID(c.filename, id)
	records = append(records, record)

	if err := c.Save(ctx, records); err != nil {
		scope.TraceError(err)

		return record, err
	}

	return record, nil
}

// GetAll returns the records in stored (insertion) order.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	return c.Load(ctx)
}

// GetByID returns the record with the given id, reporting absence
// explicitly rather than as an error.
func (c *Collection[T]) GetByID(ctx context.Context, id int) (T, bool, error) {
	return c.Find(ctx, func(rec T) bool { return rec.GetID() == id })
}

// Find returns the first record matching the predicate.
func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T

	records, err := c.Load(ctx)
	if err != nil {
		return zero, false, err
	}

	for _, rec := range records {
		if match(rec) {
			return rec, true, nil
		}
	}

	return zero, false, nil
}

// Filter returns every record matching the predicate, in stored order.
func (c *Collection[T]) Filter(ctx context.Context, match func(T) bool) ([]T, error) {
	records, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := []T{}
	for _, rec := range records {
		if match(rec) {
			matched = append(matched, rec)
		}
	}

	return matched, nil
}

// Update locates the record by id, applies the mutation and persists.
// Returns false when no record carries the id; storage is untouched in
// that case. The applied mutation cannot change the id.
func (c *Collection[T]) Update(ctx context.Context, id int, apply func(T)) (bool, error) {
	return c.UpdateWhere(ctx, func(rec T) bool { return rec.GetID() == id }, apply)
}

// UpdateWhere applies the mutation to the first record matching the
// predicate.
func (c *Collection[T]) UpdateWhere(ctx context.Context, match func(T) bool, apply func(T)) (found bool, err error) {
	lock := c.store.lock(c.filename)
	lock.Lock()
	defer lock.Unlock()

	ctx, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelStoreScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := c.Load(ctx)
	if err != nil {
		return false, err
	}

	for _, rec := range records {
		if !match(rec) {
			continue
		}

		id := rec.GetID()
		apply(rec)
		rec.SetID(id)

		if err := c.Save(ctx, records); err != nil {
			return false, err
		}

		return true, nil
	}

	return false, nil
}

// Delete filters the record out of the collection and persists.
// Deleting an id that does not exist is a no-op success.
func (c *Collection[T]) Delete(ctx context.Context, id int) (err error) {
	lock := c.store.lock(c.filename)
	lock.Lock()
	defer lock.Unlock()

	ctx, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelStoreScopeName, c.entity))
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := c.Load(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.GetID() != id {
			kept = append(kept, rec)
		}
	}

	return c.Save(ctx, kept)
}
