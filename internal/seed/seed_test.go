package seed

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestSeed_PopulatesData(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, NumPosts: 10, ShouldClean: true}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.EqualValues(t, 5, userCount)
	require.EqualValues(t, 10, postCount)
}

func TestSeed_CountersMatchJoinTables(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 6, NumPosts: 12, ShouldClean: true}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		var likeCount, commentCount int64
		require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
		require.EqualValues(t, likeCount, post.LikesCount, "post %d likes counter", post.ID)
		require.EqualValues(t, commentCount, post.CommentsCount, "post %d comments counter", post.ID)
	}

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	for _, user := range users {
		var followers, following int64
		require.NoError(t, db.Model(&models.Follow{}).Where("followee_id = ?", user.ID).Count(&followers).Error)
		require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&following).Error)
		require.EqualValues(t, followers, user.Counts.FollowedBy, "user %d follower counter", user.ID)
		require.EqualValues(t, following, user.Counts.Follows, "user %d following counter", user.ID)
	}
}
