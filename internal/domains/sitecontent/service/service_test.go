package service_test

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/config"
	"yadoya/infras/otel/mocks"
	"yadoya/internal/domains/sitecontent/model/dto"
	"yadoya/internal/domains/sitecontent/repository"
	"yadoya/internal/domains/sitecontent/service"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/cache"
	"yadoya/shared/locale"
)

func newTestService(t *testing.T) (service.SiteContent, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	mockOtel := mocks.NewOtel()

	store, err := jsonstore.NewAt(dir, mockOtel)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.Data.Dir = dir
	cfg.Data.StaticDir = t.TempDir()
	cfg.Cache.TTL = 60

	return service.New(repository.New(store), cfg, cache.NewRedisCache(client, mockOtel), mockOtel), cfg
}

func TestSiteContentService_CreateRejectsDuplicateKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateSiteContentRequest{Key: "access", HeadingJA: "アクセス"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateSiteContentRequest{Key: "access", HeadingJA: "二つ目"})
	assert.Error(t, err)
}

func TestSiteContentService_CreateSanitizesExtra(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateSiteContentRequest{
		Key: "contact",
		Extra: map[string]any{
			"wechat_qr": "https://evil.example/qr.png",
			"line_qr":   "/static/img/qr/line.png",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "img/placeholder.jpg", created.Extra["wechat_qr"])
	assert.Equal(t, "img/qr/line.png", created.Extra["line_qr"])
}

func TestSiteContentService_UpdatePreservesKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateSiteContentRequest{Key: "access", HeadingJA: "アクセス"})
	require.NoError(t, err)

	heading := "Access"
	require.NoError(t, svc.Update(ctx, created.ID, dto.UpdateSiteContentRequest{HeadingEN: &heading}))

	updated, err := svc.Get(ctx, created.ID, locale.English)
	require.NoError(t, err)
	assert.Equal(t, "access", updated.Key)
	assert.Equal(t, "Access", updated.Heading)
}

func TestSiteContentService_UpdateByKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateSiteContentRequest{Key: "access", BodyJA: "駅から徒歩5分"})
	require.NoError(t, err)

	body := "5 minutes from the station"
	require.NoError(t, svc.UpdateByKey(ctx, "access", dto.UpdateSiteContentRequest{BodyEN: &body}))

	content, err := svc.GetByKey(ctx, "access", locale.English)
	require.NoError(t, err)
	assert.Equal(t, body, content.Body)

	err = svc.UpdateByKey(ctx, "missing", dto.UpdateSiteContentRequest{BodyEN: &body})
	assert.Error(t, err)
}

func TestSiteContentService_HomeContent(t *testing.T) {
	svc, cfg := newTestService(t)
	ctx := context.Background()

	t.Run("missing file is an empty document", func(t *testing.T) {
		res, err := svc.GetHomeContent(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Content)
	})

	t.Run("replace then read back", func(t *testing.T) {
		require.NoError(t, svc.ReplaceHomeContent(ctx, []byte(`{"hero":"ようこそ","sections":[{"title":"about"}]}`)))

		res, err := svc.GetHomeContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ようこそ", res.Content["hero"])
	})

	t.Run("malformed payload leaves the live document intact", func(t *testing.T) {
		err := svc.ReplaceHomeContent(ctx, []byte("{broken"))
		assert.Error(t, err)

		res, err := svc.GetHomeContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ようこそ", res.Content["hero"])
	})

	t.Run("corrupt file on disk is an error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(service.HomeContentPath(cfg), []byte("{broken"), 0o644))

		_, err := svc.GetHomeContent(ctx)
		assert.Error(t, err)
	})
}
