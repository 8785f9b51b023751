package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/infras/otel/mocks"
	"yadoya/internal/store/jsonstore"
)

type widget struct {
	jsonstore.Model
	Name string `json:"name"`
}

func newTestCollection(t *testing.T) (jsonstore.Collection[*widget], string) {
	t.Helper()

	dir := t.TempDir()

	store, err := jsonstore.NewAt(dir, mocks.NewOtel())
	require.NoError(t, err)

	return jsonstore.NewCollection[*widget](store, "widget", "widgets.json"), dir
}

func TestCollection_InsertAssignsSequentialIDs(t *testing.T) {
	collection, _ := newTestCollection(t)
	ctx := context.Background()

	first, err := collection.Insert(ctx, &widget{Name: "one"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := collection.Insert(ctx, &widget{Name: "two"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	records, err := collection.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCollection_IDsNeverReusedAfterDelete(t *testing.T) {
	collection, _ := newTestCollection(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := collection.Insert(ctx, &widget{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, collection.Delete(ctx, 3))

	next, err := collection.Insert(ctx, &widget{Name: "four"})
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID, "id of a deleted record must not be handed out again")
}

func TestCollection_HighWaterMarkSharedAcrossHandles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := jsonstore.NewAt(dir, mocks.NewOtel())
	require.NoError(t, err)

	collection := jsonstore.NewCollection[*widget](store, "widget", "widgets.json")
	for _, name := range []string{"one", "two", "three"} {
		_, err := collection.Insert(ctx, &widget{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, collection.Delete(ctx, 3))

	// a second handle over the same store sees the same mark
	other := jsonstore.NewCollection[*widget](store, "widget", "widgets.json")

	next, err := other.Insert(ctx, &widget{Name: "four"})
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID)
}

func TestCollection_FreshStoreReseedsMarkFromFile(t *testing.T) {
	collection, dir := newTestCollection(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := collection.Insert(ctx, &widget{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, collection.Delete(ctx, 2))

	// a fresh store handle over the same directory seeds the mark from
	// the surviving records, so a non-max deleted id stays burned
	reopened, err := jsonstore.NewAt(dir, mocks.NewOtel())
	require.NoError(t, err)

	fresh := jsonstore.NewCollection[*widget](reopened, "widget", "widgets.json")

	next, err := fresh.Insert(ctx, &widget{Name: "four"})
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID)
}

func TestCollection_MissingFileIsEmptyCollection(t *testing.T) {
	collection, _ := newTestCollection(t)

	records, err := collection.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollection_CorruptFileIsAnError(t *testing.T) {
	collection, dir := newTestCollection(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.json"), []byte("{not json"), 0o644))

	_, err := collection.GetAll(context.Background())
	assert.Error(t, err)
}

func TestCollection_GetByID(t *testing.T) {
	collection, _ := newTestCollection(t)
	ctx := context.Background()

	inserted, err := collection.Insert(ctx, &widget{Name: "one"})
	require.NoError(t, err)

	found, ok, err := collection.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", found.Name)

	_, ok, err = collection.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollection_UpdateAppliesMutationAndKeepsID(t *testing.T) {
	collection, _ := newTestCollection(t)
	ctx := context.Background()

	inserted, err := collection.Insert(ctx, &widget{Name: "before"})
	require.NoError(t, err)

	found, err := collection.Update(ctx, inserted.ID, func(w *widget) {
		w.Name = "after"
		w.ID = 42 // must be ignored
	})
	require.NoError(t, err)
	require.True(t, found)

	updated, ok, err := collection.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, inserted.ID, updated.ID)
}

func TestCollection_UpdateMissingIDLeavesStorageUntouched(t *testing.T) {
	collection, dir := newTestCollection(t)
	ctx := context.Background()

	_, err := collection.Insert(ctx, &widget{Name: "one"})
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(dir, "widgets.json"))
	require.NoError(t, err)

	found, err := collection.Update(ctx, 999, func(w *widget) { w.Name = "never" })
	require.NoError(t, err)
	assert.False(t, found)

	after, err := os.ReadFile(filepath.Join(dir, "widgets.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	collection, _ := newTestCollection(t)
	ctx := context.Background()

	inserted, err := collection.Insert(ctx, &widget{Name: "one"})
	require.NoError(t, err)

	require.NoError(t, collection.Delete(ctx, inserted.ID))
	require.NoError(t, collection.Delete(ctx, inserted.ID))

	records, err := collection.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_WriteFileReplacesContent(t *testing.T) {
	dir := t.TempDir()

	store, err := jsonstore.NewAt(dir, mocks.NewOtel())
	require.NoError(t, err)

	require.NoError(t, store.WriteFile("widgets.json", []byte(`[{"id":1,"name":"restored"}]`)))

	data, err := store.ReadFile("widgets.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"restored"}]`, string(data))
}

func TestStore_ReadFileMissingIsNil(t *testing.T) {
	dir := t.TempDir()

	store, err := jsonstore.NewAt(dir, mocks.NewOtel())
	require.NoError(t, err)

	data, err := store.ReadFile("nope.json")
	require.NoError(t, err)
	assert.Nil(t, data)
}
