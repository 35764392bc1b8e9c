package sqlstore

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openDBFunc returns a freshly migrated, empty database.
type openDBFunc func(t *testing.T) *sql.DB

func mustCreateUser(t *testing.T, ctx context.Context, users *UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "Name of "+username, "$2a$10$hashhashhash")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))
	return user
}

func mustCreateBlog(t *testing.T, ctx context.Context, blogs *BlogStore, owner uuid.UUID, title string, likes int) *domain.Blog {
	t.Helper()
	blog, err := domain.NewBlog(owner, title, "Some Author", "https://example.com/"+title, likes)
	require.NoError(t, err)
	require.NoError(t, blogs.Create(ctx, blog))
	return blog
}

func runUserStoreSuite(t *testing.T, d Dialect, open openDBFunc) {
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		created := mustCreateUser(t, ctx, users, "alice")

		byID, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
		assert.Equal(t, created.HashedPassword, byID.HashedPassword)
		assert.Empty(t, byID.Blogs)
		assert.NotNil(t, byID.Blogs)

		byName, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		mustCreateUser(t, ctx, users, "alice")

		dup, err := domain.NewUser("alice", "Other", "$2a$10$otherhash")
		require.NoError(t, err)
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid user", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		err := users.Create(ctx, &domain.User{ID: uuid.New(), Username: "al", Name: "Al", HashedPassword: "x"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing user", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		_, err = users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("update persists blog references in order", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		user := mustCreateUser(t, ctx, users, "alice")

		first, second := uuid.New(), uuid.New()
		user.AppendBlog(first)
		user.AppendBlog(second)
		user.Name = "Alice Liddell"
		require.NoError(t, users.Update(ctx, user))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", got.Name)
		assert.Equal(t, []uuid.UUID{first, second}, got.Blogs)
	})

	t.Run("update unknown user", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		ghost, err := domain.NewUser("ghost", "Ghost", "$2a$10$hash")
		require.NoError(t, err)
		assert.ErrorIs(t, users.Update(ctx, ghost), store.ErrUserNotFound)
	})

	t.Run("append blog extends existing references", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		user := mustCreateUser(t, ctx, users, "alice")

		first, second, third := uuid.New(), uuid.New(), uuid.New()
		user.AppendBlog(first)
		require.NoError(t, users.Update(ctx, user))

		// user is now stale; appends must not depend on it.
		require.NoError(t, users.AppendBlog(ctx, user.ID, second))
		require.NoError(t, users.AppendBlog(ctx, user.ID, third))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second, third}, got.Blogs)
	})

	t.Run("concurrent appends all kept", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		user := mustCreateUser(t, ctx, users, "alice")
		const n = 8

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- users.AppendBlog(ctx, user.ID, uuid.New())
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, got.Blogs, n)
	})

	t.Run("append blog unknown user", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		assert.ErrorIs(t, users.AppendBlog(ctx, uuid.New(), uuid.New()), store.ErrUserNotFound)
	})

	t.Run("list in creation order", func(t *testing.T) {
		users := NewUserStore(open(t), d, nil)
		alice := mustCreateUser(t, ctx, users, "alice")
		bob := mustCreateUser(t, ctx, users, "bob")
		carol := mustCreateUser(t, ctx, users, "carol")

		ref := uuid.New()
		bob.AppendBlog(ref)
		require.NoError(t, users.Update(ctx, bob))

		list, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, alice.ID, list[0].ID)
		assert.Equal(t, bob.ID, list[1].ID)
		assert.Equal(t, carol.ID, list[2].ID)
		assert.Equal(t, []uuid.UUID{ref}, list[1].Blogs)
		assert.Empty(t, list[2].Blogs)
	})
}

func runBlogStoreSuite(t *testing.T, d Dialect, open openDBFunc) {
	ctx := context.Background()

	setup := func(t *testing.T) (*UserStore, *BlogStore, *domain.User) {
		db := open(t)
		users := NewUserStore(db, d, nil)
		blogs := NewBlogStore(db, d, nil)
		return users, blogs, mustCreateUser(t, ctx, users, "alice")
	}

	t.Run("create and fetch", func(t *testing.T) {
		_, blogs, owner := setup(t)
		created := mustCreateBlog(t, ctx, blogs, owner.ID, "first", 3)

		got, err := blogs.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Title)
		assert.Equal(t, 3, got.Likes)
		assert.Equal(t, owner.ID, got.OwnerID)
		assert.True(t, got.IsOwnedBy(owner.ID))
	})

	t.Run("list in insertion order", func(t *testing.T) {
		_, blogs, owner := setup(t)
		a := mustCreateBlog(t, ctx, blogs, owner.ID, "a", 0)
		b := mustCreateBlog(t, ctx, blogs, owner.ID, "b", 0)
		c := mustCreateBlog(t, ctx, blogs, owner.ID, "c", 0)

		list, err := blogs.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("empty list", func(t *testing.T) {
		_, blogs, _ := setup(t)
		list, err := blogs.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("negative likes rejected", func(t *testing.T) {
		_, blogs, owner := setup(t)
		blog, err := domain.NewBlog(owner.ID, "neg", "", "https://example.com", -1)
		require.NoError(t, err)
		assert.ErrorIs(t, blogs.Create(ctx, blog), store.ErrInvalidEntity)
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		_, blogs, _ := setup(t)
		blog, err := domain.NewBlog(uuid.New(), "orphan", "", "https://example.com", 0)
		require.NoError(t, err)
		assert.ErrorIs(t, blogs.Create(ctx, blog), store.ErrInvalidEntity)
	})

	t.Run("update mutable fields", func(t *testing.T) {
		_, blogs, owner := setup(t)
		blog := mustCreateBlog(t, ctx, blogs, owner.ID, "before", 1)

		blog.Title = "after"
		blog.Author = "New Author"
		blog.URL = "https://example.com/after"
		blog.Likes = 42
		require.NoError(t, blogs.Update(ctx, blog))

		got, err := blogs.GetByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, "New Author", got.Author)
		assert.Equal(t, "https://example.com/after", got.URL)
		assert.Equal(t, 42, got.Likes)
		assert.Equal(t, owner.ID, got.OwnerID)
	})

	t.Run("update and delete missing blog", func(t *testing.T) {
		_, blogs, owner := setup(t)
		ghost, err := domain.NewBlog(owner.ID, "ghost", "", "https://example.com", 0)
		require.NoError(t, err)
		assert.ErrorIs(t, blogs.Update(ctx, ghost), store.ErrBlogNotFound)
		assert.ErrorIs(t, blogs.Delete(ctx, ghost.ID), store.ErrBlogNotFound)
		_, err = blogs.GetByID(ctx, ghost.ID)
		assert.ErrorIs(t, err, store.ErrBlogNotFound)
	})

	t.Run("delete leaves back-reference in place", func(t *testing.T) {
		users, blogs, owner := setup(t)
		blog := mustCreateBlog(t, ctx, blogs, owner.ID, "doomed", 0)
		owner.AppendBlog(blog.ID)
		require.NoError(t, users.Update(ctx, owner))

		require.NoError(t, blogs.Delete(ctx, blog.ID))

		_, err := blogs.GetByID(ctx, blog.ID)
		assert.ErrorIs(t, err, store.ErrBlogNotFound)

		got, err := users.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{blog.ID}, got.Blogs)
	})
}
