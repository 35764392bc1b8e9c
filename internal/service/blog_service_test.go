package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/mocks"
	"github.com/phrazzld/bloglist-api/internal/platform/memory"
	"github.com/phrazzld/bloglist-api/internal/service"
	"github.com/phrazzld/bloglist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blogFixture struct {
	users   *memory.UserStore
	blogs   *memory.BlogStore
	service service.BlogService
	alice   *domain.User
	bob     *domain.User
}

func newBlogFixture(t *testing.T, policy string) *blogFixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserStore()
	blogs := memory.NewBlogStore(users)

	alice, err := domain.NewUser("alice", "Alice", "hash")
	require.NoError(t, err)
	bob, err := domain.NewUser("bob", "Bob", "hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	svc, err := service.NewBlogService(blogs, users, policy, nil)
	require.NoError(t, err)

	return &blogFixture{users: users, blogs: blogs, service: svc, alice: alice, bob: bob}
}

func intPtr(v int) *int { return &v }

func TestNewBlogService(t *testing.T) {
	blogs, users := &mocks.MockBlogStore{}, &mocks.MockUserStore{}

	_, err := service.NewBlogService(nil, users, config.UpdatePolicyOpen, nil)
	assert.Error(t, err)
	_, err = service.NewBlogService(blogs, nil, config.UpdatePolicyOpen, nil)
	assert.Error(t, err)
	_, err = service.NewBlogService(blogs, users, "anyone", nil)
	assert.Error(t, err)

	_, err = service.NewBlogService(blogs, users, config.UpdatePolicyOwner, nil)
	assert.NoError(t, err)
}

func TestBlogServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults likes and links owner", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)

		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{
			Title: "T", Author: "A", URL: "U",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, created.Blog.Likes)
		assert.Equal(t, f.alice.ID, created.Blog.OwnerID)
		require.NotNil(t, created.Owner)
		assert.Equal(t, "alice", created.Owner.Username)
		assert.Equal(t, "Alice", created.Owner.Name)

		stored, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{created.Blog.ID}, stored.Blogs)
	})

	t.Run("explicit likes kept", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{
			Title: "T", URL: "U", Likes: intPtr(7),
		})
		require.NoError(t, err)
		assert.Equal(t, 7, created.Blog.Likes)
	})

	tests := []struct {
		name    string
		params  service.CreateBlogParams
		wantErr error
	}{
		{"missing title", service.CreateBlogParams{URL: "U"}, domain.ErrValidation},
		{"missing url", service.CreateBlogParams{Title: "T"}, domain.ErrValidation},
		{"negative likes", service.CreateBlogParams{Title: "T", URL: "U", Likes: intPtr(-1)}, store.ErrInvalidEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBlogFixture(t, config.UpdatePolicyOpen)
			_, err := f.service.Create(ctx, f.alice, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)

			list, err := f.blogs.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}

	t.Run("anonymous rejected before validation", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		_, err := f.service.Create(ctx, nil, service.CreateBlogParams{})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("stale owner snapshots keep every blog", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)

		first, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)
		second, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)

		a, err := f.service.Create(ctx, first, service.CreateBlogParams{Title: "A", URL: "U"})
		require.NoError(t, err)
		b, err := f.service.Create(ctx, second, service.CreateBlogParams{Title: "B", URL: "U"})
		require.NoError(t, err)

		stored, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.Blog.ID, b.Blog.ID}, stored.Blogs)
	})

	t.Run("concurrent creates by one owner", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				owner, err := f.users.GetByID(ctx, f.alice.ID)
				if err != nil {
					errs <- err
					return
				}
				_, err = f.service.Create(ctx, owner, service.CreateBlogParams{Title: "T", URL: "U"})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Blogs, n)
	})

	t.Run("owner append failure surfaces", func(t *testing.T) {
		boom := errors.New("db down")
		users := &mocks.MockUserStore{
			AppendBlogFn: func(context.Context, uuid.UUID, uuid.UUID) error { return boom },
		}
		svc, err := service.NewBlogService(memory.NewBlogStore(nil), users, config.UpdatePolicyOpen, nil)
		require.NoError(t, err)

		alice, err := domain.NewUser("alice", "Alice", "hash")
		require.NoError(t, err)
		_, err = svc.Create(ctx, alice, service.CreateBlogParams{Title: "T", URL: "U"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestBlogServiceList(t *testing.T) {
	ctx := context.Background()
	f := newBlogFixture(t, config.UpdatePolicyOpen)

	first, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "one", URL: "u1"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, f.bob, service.CreateBlogParams{Title: "two", URL: "u2"})
	require.NoError(t, err)

	list, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Blog.ID, list[0].Blog.ID)
	assert.Equal(t, "alice", list[0].Owner.Username)
	assert.Equal(t, second.Blog.ID, list[1].Blog.ID)
	assert.Equal(t, "bob", list[1].Owner.Username)
}

func TestBlogServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, f.alice, created.Blog.ID))

		list, err := f.service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		// The back-reference is left in place.
		stored, err := f.users.GetByID(ctx, f.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{created.Blog.ID}, stored.Blogs)
	})

	t.Run("non-owner forbidden and blog remains", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)

		err = f.service.Delete(ctx, f.bob, created.Blog.ID)
		assert.ErrorIs(t, err, service.ErrNotOwned)

		_, err = f.blogs.GetByID(ctx, created.Blog.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown blog", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		err := f.service.Delete(ctx, f.alice, uuid.New())
		assert.ErrorIs(t, err, store.ErrBlogNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		err := f.service.Delete(ctx, nil, uuid.New())
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("store failure wrapped", func(t *testing.T) {
		boom := errors.New("db down")
		svc, err := service.NewBlogService(&mocks.MockBlogStore{Err: boom}, &mocks.MockUserStore{},
			config.UpdatePolicyOpen, nil)
		require.NoError(t, err)

		err = svc.Delete(ctx, &domain.User{ID: uuid.New()}, uuid.New())
		assert.ErrorIs(t, err, boom)
		var serviceErr *service.ServiceError
		assert.ErrorAs(t, err, &serviceErr)
	})
}

func TestBlogServiceUpdate(t *testing.T) {
	ctx := context.Background()
	replacement := service.UpdateBlogParams{Title: "New", Author: "Someone", URL: "https://new", Likes: intPtr(5)}

	t.Run("open policy lets anyone update", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)

		for _, requester := range []*domain.User{nil, f.bob} {
			updated, err := f.service.Update(ctx, requester, created.Blog.ID, replacement)
			require.NoError(t, err)
			assert.Equal(t, "New", updated.Blog.Title)
			assert.Equal(t, 5, updated.Blog.Likes)
			assert.Equal(t, f.alice.ID, updated.Blog.OwnerID)
			assert.Equal(t, "alice", updated.Owner.Username)
		}
	})

	t.Run("owner policy", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOwner)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)

		_, err = f.service.Update(ctx, nil, created.Blog.ID, replacement)
		assert.ErrorIs(t, err, service.ErrUnauthorized)

		_, err = f.service.Update(ctx, f.bob, created.Blog.ID, replacement)
		assert.ErrorIs(t, err, service.ErrNotOwned)

		updated, err := f.service.Update(ctx, f.alice, created.Blog.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Blog.Title)
	})

	t.Run("absent likes reset to zero", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U", Likes: intPtr(9)})
		require.NoError(t, err)

		updated, err := f.service.Update(ctx, nil, created.Blog.ID, service.UpdateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Blog.Likes)
	})

	t.Run("invalid replacement", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		created, err := f.service.Create(ctx, f.alice, service.CreateBlogParams{Title: "T", URL: "U"})
		require.NoError(t, err)

		_, err = f.service.Update(ctx, nil, created.Blog.ID, service.UpdateBlogParams{URL: "U"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.service.Update(ctx, nil, created.Blog.ID,
			service.UpdateBlogParams{Title: "T", URL: "U", Likes: intPtr(-3)})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown blog", func(t *testing.T) {
		f := newBlogFixture(t, config.UpdatePolicyOpen)
		_, err := f.service.Update(ctx, nil, uuid.New(), replacement)
		assert.ErrorIs(t, err, store.ErrBlogNotFound)
	})
}

func TestBlogServiceStats(t *testing.T) {
	ctx := context.Background()
	f := newBlogFixture(t, config.UpdatePolicyOpen)

	empty, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalLikes)
	assert.Nil(t, empty.Favorite)
	assert.Nil(t, empty.MostBlogs)
	assert.Nil(t, empty.MostLikes)

	for _, p := range []service.CreateBlogParams{
		{Title: "a", Author: "Dijkstra", URL: "u", Likes: intPtr(5)},
		{Title: "b", Author: "Martin", URL: "u", Likes: intPtr(12)},
		{Title: "c", Author: "Martin", URL: "u", Likes: intPtr(1)},
	} {
		_, err := f.service.Create(ctx, f.alice, p)
		require.NoError(t, err)
	}

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18, stats.TotalLikes)
	require.NotNil(t, stats.Favorite)
	assert.Equal(t, "b", stats.Favorite.Title)
	require.NotNil(t, stats.MostBlogs)
	assert.Equal(t, "Martin", stats.MostBlogs.Author)
	assert.Equal(t, 2, stats.MostBlogs.Blogs)
	require.NotNil(t, stats.MostLikes)
	assert.Equal(t, "Martin", stats.MostLikes.Author)
	assert.Equal(t, 13, stats.MostLikes.Likes)
}
