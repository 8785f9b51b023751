package backup_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/config"
	"yadoya/infras/otel/mocks"
	"yadoya/internal/backup"
	"yadoya/shared/constant"
)

func newTestManager(t *testing.T) (backup.Manager, *config.Config) {
	t.Helper()

	root := t.TempDir()

	cfg := &config.Config{}
	cfg.Data.Dir = filepath.Join(root, "data")
	cfg.Data.StaticDir = filepath.Join(root, "static")
	cfg.Data.UsersFile = filepath.Join(root, "users.json")
	cfg.Backup.Dir = filepath.Join(root, "backups")
	cfg.Backup.Retention = 10

	require.NoError(t, os.MkdirAll(cfg.Data.Dir, 0o755))

	return backup.New(cfg, nil, mocks.NewOtel()), cfg
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManager_CreateAndList(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	writeJSON(t, filepath.Join(cfg.Data.Dir, constant.FileRooms), `[{"id":1}]`)
	writeJSON(t, cfg.Data.UsersFile, `[{"username":"keeper"}]`)

	info, err := manager.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Filename, "json_data_backup_"))
	assert.True(t, strings.HasSuffix(info.Filename, ".tar.gz"))
	assert.Positive(t, info.Size)

	infos, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, info.Filename, infos[0].Filename)
}

func TestManager_ListEmptyDirIsEmpty(t *testing.T) {
	manager, _ := newTestManager(t)

	infos, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestManager_ListNewestFirstByModTime(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(cfg.Backup.Dir, 0o755))

	base := time.Now().Add(-time.Hour)
	names := []string{
		"json_data_backup_20260101_000001.tar.gz",
		"json_data_backup_20260101_000002.tar.gz",
		"json_data_backup_20260101_000003.tar.gz",
	}

	// write in name order but age them in reverse, ordering must follow
	// the file modification times
	for i, name := range names {
		path := filepath.Join(cfg.Backup.Dir, name)
		require.NoError(t, os.WriteFile(path, []byte("archive"), 0o644))

		mtime := base.Add(time.Duration(len(names)-i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	infos, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, names[0], infos[0].Filename)
	assert.Equal(t, names[1], infos[1].Filename)
	assert.Equal(t, names[2], infos[2].Filename)
}

func TestManager_RestoreArchiveRoundTrip(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	writeJSON(t, filepath.Join(cfg.Data.Dir, constant.FileRooms), `[{"id":1,"name_ja":"離れ"}]`)
	writeJSON(t, filepath.Join(cfg.Data.Dir, constant.FileNews), `[{"id":1}]`)
	writeJSON(t, filepath.Join(cfg.Data.StaticDir, "data", constant.FileHomeContent), `{"hero":"welcome"}`)

	info, err := manager.Create(ctx)
	require.NoError(t, err)

	// Wipe the live data, then restore from the archive.
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.Dir, constant.FileRooms)))
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.StaticDir, "data", constant.FileHomeContent)))

	file, _, err := manager.Open(ctx, info.Filename)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, manager.Restore(ctx, info.Filename, file))

	rooms, err := os.ReadFile(filepath.Join(cfg.Data.Dir, constant.FileRooms))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name_ja":"離れ"}]`, string(rooms))

	home, err := os.ReadFile(filepath.Join(cfg.Data.StaticDir, "data", constant.FileHomeContent))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hero":"welcome"}`, string(home))
}

func TestManager_RestoreSingleJSONRoutesByName(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	err := manager.Restore(ctx, constant.FileRooms, strings.NewReader(`[{"id":7}]`))
	require.NoError(t, err)

	rooms, err := os.ReadFile(filepath.Join(cfg.Data.Dir, constant.FileRooms))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7}]`, string(rooms))

	err = manager.Restore(ctx, constant.FileHomeContent, strings.NewReader(`{"hero":"replaced"}`))
	require.NoError(t, err)

	home, err := os.ReadFile(filepath.Join(cfg.Data.StaticDir, "data", constant.FileHomeContent))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hero":"replaced"}`, string(home))
}

func TestManager_RestoreLeavesNoTempFiles(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Restore(ctx, constant.FileRooms, strings.NewReader(`[{"id":1}]`)))

	// replaced atomically: only the renamed target remains
	entries, err := os.ReadDir(cfg.Data.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constant.FileRooms, entries[0].Name())
}

func TestManager_RestoreRejectsMalformedAndForeignUploads(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	writeJSON(t, filepath.Join(cfg.Data.Dir, constant.FileRooms), `[{"id":1}]`)

	t.Run("unsupported extension", func(t *testing.T) {
		err := manager.Restore(ctx, "dump.sql", strings.NewReader("DROP TABLE rooms;"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON leaves live data untouched", func(t *testing.T) {
		err := manager.Restore(ctx, constant.FileRooms, strings.NewReader("{broken"))
		assert.Error(t, err)

		rooms, readErr := os.ReadFile(filepath.Join(cfg.Data.Dir, constant.FileRooms))
		require.NoError(t, readErr)
		assert.JSONEq(t, `[{"id":1}]`, string(rooms))
	})

	t.Run("malformed archive", func(t *testing.T) {
		err := manager.Restore(ctx, "json_data_backup_20260101_000000.tar.gz", strings.NewReader("not gzip"))
		assert.Error(t, err)
	})
}

func TestManager_OpenRejectsTraversal(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	for _, name := range []string{
		"../secrets.tar.gz",
		"..",
		"nested/json_data_backup_20260101_000000.tar.gz",
		"random.tar.gz",
		"",
	} {
		_, _, err := manager.Open(ctx, name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestManager_PruneKeepsNewest(t *testing.T) {
	manager, cfg := newTestManager(t)
	ctx := context.Background()

	cfg.Backup.Retention = 2

	require.NoError(t, os.MkdirAll(cfg.Backup.Dir, 0o755))

	base := time.Now().Add(-time.Hour)
	names := []string{
		"json_data_backup_20260101_000001.tar.gz",
		"json_data_backup_20260101_000002.tar.gz",
		"json_data_backup_20260101_000003.tar.gz",
	}

	for i, name := range names {
		path := filepath.Join(cfg.Backup.Dir, name)
		require.NoError(t, os.WriteFile(path, []byte("archive"), 0o644))

		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	require.NoError(t, manager.Prune(ctx))

	infos, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	for _, info := range infos {
		assert.NotEqual(t, names[0], info.Filename, "the oldest archive must be pruned")
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", backup.FormatFileSize(512))
	assert.Equal(t, "1.0 KB", backup.FormatFileSize(1024))
	assert.Equal(t, "1.5 MB", backup.FormatFileSize(1536*1024))
}
