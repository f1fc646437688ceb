package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/blog/model"
	"consulting-backend/internal/domains/blog/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/filestore"
)

func newService(t *testing.T) *service.Service {
	t.Helper()
	store, err := filestore.New[model.Post](t.TempDir(), model.Table)
	require.NoError(t, err)
	return service.NewService(store)
}

func TestCreate_DerivesSlugFromTitle(t *testing.T) {
	svc := newService(t)

	post := &model.Post{Title: "My First Post!", Content: "Hello"}
	require.NoError(t, svc.Records().Create(context.Background(), post))

	assert.Equal(t, "my-first-post", post.Slug)
	assert.Nil(t, post.PublishedAt)
}

func TestCreate_ExplicitSlugIsCleaned(t *testing.T) {
	svc := newService(t)

	post := &model.Post{Title: "Whatever", Slug: "Tax  Tips 2024", Content: "x", Tags: " tax, Tax ,planning"}
	require.NoError(t, svc.Records().Create(context.Background(), post))

	assert.Equal(t, "tax-tips-2024", post.Slug)
	assert.Equal(t, "tax,planning", post.Tags)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Records().Create(ctx, &model.Post{Title: "Same", Content: "a"}))
	err := svc.Records().Create(ctx, &model.Post{Title: "same", Content: "b"})
	assert.ErrorIs(t, err, record.ErrConflict)
}

func TestCreate_RequiresTitleAndContent(t *testing.T) {
	svc := newService(t)

	err := svc.Records().Create(context.Background(), &model.Post{Title: "!!!"})
	assert.True(t, record.IsValidation(err))
}

func TestPublishLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.Records().WithClock(func() time.Time { return now })

	post := &model.Post{Title: "Draft", Content: "x"}
	require.NoError(t, svc.Records().Create(ctx, post))

	_, err := svc.GetBySlug(ctx, "draft", false)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	published, err := svc.SetPublished(ctx, post.ID, true)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, now, *published.PublishedAt)

	got, err := svc.GetBySlug(ctx, "Draft", false)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	unpublished, err := svc.SetPublished(ctx, post.ID, false)
	require.NoError(t, err)
	assert.Nil(t, unpublished.PublishedAt)

	_, err = svc.SetPublished(ctx, "missing", true)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestTagsAndListByTag(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, p := range []*model.Post{
		{Title: "A", Content: "x", Tags: "tax,investment", Published: true},
		{Title: "B", Content: "x", Tags: "tax", Published: true},
		{Title: "C", Content: "x", Tags: "marketing", Published: true},
		{Title: "D", Content: "x", Tags: "tax", Published: false},
	} {
		require.NoError(t, svc.Records().Create(ctx, p))
	}

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []service.TagCount{
		{Tag: "tax", Count: 2},
		{Tag: "investment", Count: 1},
		{Tag: "marketing", Count: 1},
	}, tags)

	posts, err := svc.ListByTag(ctx, "TAX")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
