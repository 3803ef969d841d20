package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "ada", HashedPassword: "x"}
	assert.NoError(t, userRepo.Create(ctx, author))
	post := &models.Post{Title: "Hello", Content: "World", UserID: author.ID}
	assert.NoError(t, postRepo.Create(ctx, post))

	t.Run("Create and GetByID preloads author", func(t *testing.T) {
		comment := &models.Comment{Content: "First!", UserID: author.ID, PostID: post.ID}
		err := repo.Create(ctx, comment)
		assert.NoError(t, err)
		assert.NotZero(t, comment.ID)

		fetched, err := repo.GetByID(ctx, comment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "First!", fetched.Content)
		assert.Equal(t, "ada", fetched.User.Name)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("ListByPost scopes to post", func(t *testing.T) {
		otherPost := &models.Post{Title: "Other", Content: "c", UserID: author.ID}
		assert.NoError(t, postRepo.Create(ctx, otherPost))
		assert.NoError(t, repo.Create(ctx, &models.Comment{Content: "elsewhere", UserID: author.ID, PostID: otherPost.ID}))

		comments, err := repo.ListByPost(ctx, otherPost.ID)
		assert.NoError(t, err)
		assert.Len(t, comments, 1)
		assert.Equal(t, "elsewhere", comments[0].Content)
	})

	t.Run("Update", func(t *testing.T) {
		comment := &models.Comment{Content: "before", UserID: author.ID, PostID: post.ID}
		assert.NoError(t, repo.Create(ctx, comment))

		comment.Content = "after"
		assert.NoError(t, repo.Update(ctx, comment))

		fetched, err := repo.GetByID(ctx, comment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "after", fetched.Content)
	})

	t.Run("Delete", func(t *testing.T) {
		comment := &models.Comment{Content: "doomed", UserID: author.ID, PostID: post.ID}
		assert.NoError(t, repo.Create(ctx, comment))

		assert.NoError(t, repo.Delete(ctx, comment.ID))
		_, err := repo.GetByID(ctx, comment.ID)
		assert.Error(t, err)
	})
}
