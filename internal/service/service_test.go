package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	followRepo   repository.FollowRepository
	relationship *RelationshipService
	posts        *PostService
	engagement   *EngagementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	return &testEnv{
		db:           db,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		followRepo:   followRepo,
		relationship: NewRelationshipService(followRepo, userRepo),
		posts:        NewPostService(postRepo),
		engagement:   NewEngagementService(postRepo, commentRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed-password",
		Active:   true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createPost(t *testing.T, ownerID uint, title string) *models.Post {
	t.Helper()
	post, err := e.posts.CreatePost(context.Background(), CreatePostInput{
		UserID:      ownerID,
		Title:       title,
		Description: "a description",
	})
	require.NoError(t, err)
	return post
}

func (e *testEnv) reloadUser(t *testing.T, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, id).Error)
	return &user
}

func (e *testEnv) reloadPost(t *testing.T, id uint) *models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, e.db.First(&post, id).Error)
	return &post
}

func appErrStatus(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	return appErr.Status
}

func TestFollow_UpdatesBothCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	msg, err := env.relationship.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "You are now following bob.", msg)

	following, err := env.followRepo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	reverse, err := env.followRepo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	assert.Equal(t, 1, env.reloadUser(t, bob.ID).Counts.FollowedBy)
	assert.Equal(t, 1, env.reloadUser(t, alice.ID).Counts.Follows)
	assert.Equal(t, 0, env.reloadUser(t, alice.ID).Counts.FollowedBy)
	assert.Equal(t, 0, env.reloadUser(t, bob.ID).Counts.Follows)
}

func TestFollow_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.relationship.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.relationship.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, env.reloadUser(t, bob.ID).Counts.FollowedBy)
	assert.Equal(t, 1, env.reloadUser(t, alice.ID).Counts.Follows)
}

func TestFollow_Self(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.relationship.Follow(context.Background(), alice.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
}

func TestFollow_UnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.relationship.Follow(context.Background(), alice.ID, 9999)
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "Invalid user id. Please provide a valid one")
}

func TestUnfollow_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.relationship.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := env.relationship.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "You have unfollowed bob.", msg)

	following, err := env.followRepo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	assert.Equal(t, 0, env.reloadUser(t, bob.ID).Counts.FollowedBy)
	assert.Equal(t, 0, env.reloadUser(t, alice.ID).Counts.Follows)
}

func TestUnfollow_NotFollowing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.relationship.Unfollow(context.Background(), alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "You are not following this user")

	// A failed unfollow must not touch the counters.
	assert.Equal(t, 0, env.reloadUser(t, bob.ID).Counts.FollowedBy)
	assert.Equal(t, 0, env.reloadUser(t, alice.ID).Counts.Follows)
}

func TestCreatePost_StartsWithZeroCounters(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	post := env.createPost(t, alice.ID, "hello world")
	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, 0, stored.LikesCount)
	assert.Equal(t, 0, stored.CommentsCount)
}

func TestCreatePost_RequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.posts.CreatePost(context.Background(), CreatePostInput{
		UserID: alice.ID,
		Title:  "   ",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
}

func TestCreatePost_DescriptionLimitCountsRunes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")

	// 1000 two-byte runes stay within the character limit.
	post, err := env.posts.CreatePost(ctx, CreatePostInput{
		UserID:      alice.ID,
		Title:       "multibyte",
		Description: strings.Repeat("é", 1000),
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)

	_, err = env.posts.CreatePost(ctx, CreatePostInput{
		UserID:      alice.ID,
		Title:       "multibyte",
		Description: strings.Repeat("é", 1001),
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "Description too long")
}

func TestGetPost_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.posts.GetPost(context.Background(), 123)
	require.Error(t, err)
	assert.Equal(t, 404, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "A post with that ID could not be found")
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "alice's post")

	err := env.posts.DeletePost(ctx, bob.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "This post is not created by you")

	require.NoError(t, env.posts.DeletePost(ctx, alice.ID, post.ID))
	_, err = env.posts.GetPost(ctx, post.ID)
	require.Error(t, err)
}

func TestDeletePost_CascadesEngagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "to be deleted")

	require.NoError(t, env.engagement.Like(ctx, bob.ID, post.ID))
	require.NoError(t, env.engagement.Comment(ctx, bob.ID, post.ID, "nice"))

	require.NoError(t, env.posts.DeletePost(ctx, alice.ID, post.ID))

	var likes, comments int64
	require.NoError(t, env.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, env.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestLike_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "likeable")

	require.NoError(t, env.engagement.Like(ctx, bob.ID, post.ID))
	require.NoError(t, env.engagement.Like(ctx, bob.ID, post.ID))

	liked, err := env.postRepo.IsLiked(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	assert.Equal(t, 1, env.reloadPost(t, post.ID).LikesCount)
}

func TestUnlike_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "likeable")

	require.NoError(t, env.engagement.Like(ctx, bob.ID, post.ID))
	require.NoError(t, env.engagement.Unlike(ctx, bob.ID, post.ID))

	liked, err := env.postRepo.IsLiked(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	assert.Equal(t, 0, env.reloadPost(t, post.ID).LikesCount)
}

func TestUnlike_WithoutLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "never liked")

	err := env.engagement.Unlike(ctx, bob.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "You have not liked this post")
	assert.Equal(t, 0, env.reloadPost(t, post.ID).LikesCount)
}

func TestComment_OncePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, alice.ID, "discussable")

	require.NoError(t, env.engagement.Comment(ctx, bob.ID, post.ID, "first"))

	err := env.engagement.Comment(ctx, bob.ID, post.ID, "second")
	require.Error(t, err)
	assert.Equal(t, 400, appErrStatus(t, err))
	assert.Contains(t, err.Error(), "You have already commented on this post")

	commented, err := env.commentRepo.HasCommented(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, commented)
	commented, err = env.commentRepo.HasCommented(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, commented)

	assert.Equal(t, 1, env.reloadPost(t, post.ID).CommentsCount)
}

func TestComments_ListedOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	post := env.createPost(t, alice.ID, "discussable")

	now := time.Now()
	for i, c := range []struct {
		userID uint
		text   string
	}{
		{bob.ID, "first"},
		{carol.ID, "second"},
	} {
		comment := &models.Comment{
			UserID:    c.userID,
			PostID:    post.ID,
			Comment:   c.text,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.db.Create(comment).Error)
	}

	comments, err := env.commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Comment)
	assert.Equal(t, "second", comments[1].Comment)
}

func TestComment_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	post := env.createPost(t, alice.ID, "strict")

	err := env.engagement.Comment(ctx, alice.ID, post.ID, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Comment cannot be empty")

	long := make([]byte, 301)
	for i := range long {
		long[i] = 'x'
	}
	err = env.engagement.Comment(ctx, alice.ID, post.ID, string(long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Comment too long")
}

func TestEngagement_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")

	for _, err := range []error{
		env.engagement.Like(ctx, alice.ID, 777),
		env.engagement.Unlike(ctx, alice.ID, 777),
		env.engagement.Comment(ctx, alice.ID, 777, "hello"),
	} {
		require.Error(t, err)
		assert.Equal(t, 404, appErrStatus(t, err))
	}
}

func TestMe_DeletedUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.relationship.Me(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 401, appErrStatus(t, err))
}
