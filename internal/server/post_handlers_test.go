package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostHandler(t *testing.T) {
	env := setupTestServer(t)
	user := env.register(t, "ada", "secret")
	session, _ := env.login(t, "ada", "secret")

	t.Run("Success", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/post",
			map[string]string{"title": "Hello", "content": "World"}, session)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.NotZero(t, post.ID)
		assert.Equal(t, "Hello", post.Title)
		// Ownership comes from the session, and the owner rides along.
		assert.Equal(t, user.ID, post.UserID)
		assert.Equal(t, "ada", post.User.Name)
	})

	t.Run("Missing fields", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/post",
			map[string]string{"title": "Hello"}, session)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Missing required fields (title, content)", body.Error)
	})
}

func TestGetPosts(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "ada", "secret")
	session, _ := env.login(t, "ada", "secret")

	for i := 1; i <= 3; i++ {
		resp := env.request(t, http.MethodPost, "/post",
			map[string]string{"title": fmt.Sprintf("Post %d", i), "content": "Body"}, session)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := env.request(t, http.MethodGet, "/posts", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	assert.Len(t, posts, 3)
	for _, post := range posts {
		assert.Equal(t, "ada", post.User.Name)
	}
}

func TestGetPost(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "ada", "secret")
	session, _ := env.login(t, "ada", "secret")

	resp := env.request(t, http.MethodPost, "/post",
		map[string]string{"title": "Hello", "content": "World"}, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("Found without session", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/post/1", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "Hello", post.Title)
	})

	t.Run("Missing post is 404", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/post/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Post not found", body.Error)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/post/zero", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestUpdatePostHandler(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "owner", "secret")
	env.register(t, "rival", "secret")
	ownerSession, _ := env.login(t, "owner", "secret")
	rivalSession, _ := env.login(t, "rival", "secret")

	resp := env.request(t, http.MethodPost, "/post",
		map[string]string{"title": "Original", "content": "Body"}, ownerSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("Owner updates", func(t *testing.T) {
		resp := env.request(t, http.MethodPut, "/post/1",
			map[string]string{"title": "Edited", "content": "New body"}, ownerSession)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "Edited", post.Title)
	})

	t.Run("Non-owner forbidden", func(t *testing.T) {
		resp := env.request(t, http.MethodPut, "/post/1",
			map[string]string{"title": "Hijacked", "content": "x"}, rivalSession)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Permission denied", body.Error)
	})

	t.Run("Missing post is 404 even for non-owner", func(t *testing.T) {
		resp := env.request(t, http.MethodPut, "/post/9999",
			map[string]string{"title": "x", "content": "y"}, rivalSession)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestDeletePostHandler(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "owner", "secret")
	env.register(t, "rival", "secret")
	ownerSession, _ := env.login(t, "owner", "secret")
	rivalSession, _ := env.login(t, "rival", "secret")

	resp := env.request(t, http.MethodPost, "/post",
		map[string]string{"title": "Doomed", "content": "Body"}, ownerSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/post",
		map[string]string{"title": "Kept", "content": "Body"}, ownerSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Comments on both posts to check cascade scoping.
	resp = env.request(t, http.MethodPost, "/post/1/comment",
		map[string]string{"content": "on doomed"}, rivalSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	resp = env.request(t, http.MethodPost, "/post/2/comment",
		map[string]string{"content": "on kept"}, rivalSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("Non-owner forbidden", func(t *testing.T) {
		resp := env.request(t, http.MethodDelete, "/post/1", nil, rivalSession)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Owner deletes, comments cascade", func(t *testing.T) {
		resp := env.request(t, http.MethodDelete, "/post/1", nil, ownerSession)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "Doomed", post.Title)

		resp = env.request(t, http.MethodGet, "/post/1", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()

		// Only the comment on the surviving post remains.
		resp = env.request(t, http.MethodGet, "/comments", nil, "")
		var comments []models.Comment
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "on kept", comments[0].Content)
	})

	t.Run("Missing post is 404", func(t *testing.T) {
		resp := env.request(t, http.MethodDelete, "/post/9999", nil, ownerSession)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
