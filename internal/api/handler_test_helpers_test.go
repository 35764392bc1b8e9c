package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/mocks"
	"github.com/phrazzld/bloglist-api/internal/platform/memory"
	"github.com/phrazzld/bloglist-api/internal/service"
)

// apiFixture wires handlers to real services over the in-memory stores.
type apiFixture struct {
	users       *memory.UserStore
	blogs       *memory.BlogStore
	blogHandler *BlogHandler
	userHandler *UserHandler
	alice       *domain.User
	bob         *domain.User
}

func newAPIFixture(t *testing.T, policy string) *apiFixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserStore()
	blogs := memory.NewBlogStore(users)

	alice, err := domain.NewUser("alice", "Alice Liddell", "hash")
	require.NoError(t, err)
	bob, err := domain.NewUser("bob", "Bob Builder", "hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	blogSvc, err := service.NewBlogService(blogs, users, policy, nil)
	require.NoError(t, err)
	userSvc, err := service.NewUserService(users, blogs, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)

	return &apiFixture{
		users:       users,
		blogs:       blogs,
		blogHandler: NewBlogHandler(blogSvc, nil),
		userHandler: NewUserHandler(userSvc, nil),
		alice:       alice,
		bob:         bob,
	}
}

func newOpenFixture(t *testing.T) *apiFixture {
	return newAPIFixture(t, config.UpdatePolicyOpen)
}

// createBlog stores a blog owned by owner through the handler and returns
// its response.
func (f *apiFixture) createBlog(t *testing.T, owner *domain.User, body map[string]any) BlogResponse {
	t.Helper()
	rec := serve(t, f.blogHandler.Create, http.MethodPost, "/api/blogs", body, owner, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp BlogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// serve runs handler against a request with an optional JSON body, an
// optional authenticated user and an optional {id} route parameter.
func serve(
	t *testing.T,
	handler http.HandlerFunc,
	method, target string,
	body any,
	user *domain.User,
	id string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := req.Context()
	if user != nil {
		ctx = shared.WithUser(ctx, user)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
