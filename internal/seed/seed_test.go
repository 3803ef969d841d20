package seed

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

func TestRun(t *testing.T) {
	db := setupTestDB(t)

	opts := Options{
		Users:           3,
		PostsPerUser:    2,
		CommentsPerPost: 1,
		Password:        "hunter2",
	}
	require.NoError(t, Run(db, opts))

	var users, posts, comments int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)

	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(6), posts)
	assert.Equal(t, int64(6), comments)
}

func TestCreateUserPassword(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser("hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("hunter2")))
}

func TestEveryPostHasAnOwner(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Run(db, DefaultOptions()))

	var orphans int64
	db.Model(&models.Post{}).
		Where("user_id NOT IN (?)", db.Model(&models.User{}).Select("id")).
		Count(&orphans)
	assert.Zero(t, orphans)
}
