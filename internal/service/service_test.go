package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Count(&cnt).Error)
	return cnt
}

func followCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	return cnt
}

func TestCreatePostValid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()
	author := seedUser(t, db, "author")

	post, fields, err := svc.Create(ctx, author.ID, PostInput{Text: "Тестовый текст"})
	require.NoError(t, err)
	assert.Nil(t, fields)
	require.NotNil(t, post)
	assert.Equal(t, "Тестовый текст", post.Text)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.EqualValues(t, 1, postCount(t, db))
}

func TestCreatePostEmptyTextRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	author := seedUser(t, db, "author")

	post, fields, err := svc.Create(context.Background(), author.ID, PostInput{Text: ""})
	require.NoError(t, err)
	assert.Nil(t, post)
	require.Contains(t, fields, "Text")
	// 校验失败时没有任何写入
	assert.EqualValues(t, 0, postCount(t, db))
}

func TestEditPostByAuthorReplacesText(t *testing.T) {
	db := setupTestDB(t)
	posts := repository.NewPostRepository(db)
	svc := NewPostService(posts)
	ctx := context.Background()
	author := seedUser(t, db, "author")

	created, _, err := svc.Create(ctx, author.ID, PostInput{Text: "before"})
	require.NoError(t, err)

	updated, fields, err := svc.Edit(ctx, created.ID, author.ID, PostInput{Text: "after"})
	require.NoError(t, err)
	assert.Nil(t, fields)
	assert.Equal(t, "after", updated.Text)

	stored, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Text)
	assert.Equal(t, author.ID, stored.AuthorID, "author stays immutable")
	assert.EqualValues(t, 1, postCount(t, db), "edit must not create a new post")
}

func TestEditPostByNonAuthorDenied(t *testing.T) {
	db := setupTestDB(t)
	posts := repository.NewPostRepository(db)
	svc := NewPostService(posts)
	ctx := context.Background()
	author := seedUser(t, db, "author")
	intruder := seedUser(t, db, "intruder")

	created, _, err := svc.Create(ctx, author.ID, PostInput{Text: "original"})
	require.NoError(t, err)

	_, _, err = svc.Edit(ctx, created.ID, intruder.ID, PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)

	stored, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestEditUnknownPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	author := seedUser(t, db, "author")

	_, _, err := svc.Edit(context.Background(), "no-such-id", author.ID, PostInput{Text: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFollowSelfRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationshipService(repository.NewFollowRepository(db))
	u := seedUser(t, db, "u")

	err := svc.Follow(context.Background(), u.ID, u.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)
	assert.EqualValues(t, 0, followCount(t, db))
}

func TestFollowTwiceKeepsSingleEdge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationshipService(repository.NewFollowRepository(db))
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	assert.EqualValues(t, 1, followCount(t, db))

	following, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
	assert.EqualValues(t, 0, followCount(t, db))

	// 再次取关不是错误
	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
}

func TestCommentOnUnknownPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(repository.NewPostRepository(db), repository.NewCommentRepository(db))
	author := seedUser(t, db, "author")

	_, err := svc.Add(context.Background(), "no-such-post", author.ID, "hi")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentEmptyTextRejected(t *testing.T) {
	db := setupTestDB(t)
	posts := repository.NewPostRepository(db)
	svc := NewCommentService(posts, repository.NewCommentRepository(db))
	ctx := context.Background()
	author := seedUser(t, db, "author")
	post := &model.Post{AuthorID: author.ID, Text: "post"}
	require.NoError(t, posts.Create(ctx, post))

	fields, err := svc.Add(ctx, post.ID, author.ID, "")
	require.NoError(t, err)
	require.Contains(t, fields, "Text")

	var cnt int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestFeedPaginationScenario(t *testing.T) {
	// 26 帖、13 帖命中分组：第 2 页应有 3 条
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	posts := repository.NewPostRepository(db)
	feeds := NewFeedService(posts, users, groups)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	g1 := &model.Group{Title: "G1", Slug: "g1"}
	require.NoError(t, groups.Create(ctx, g1))
	g2 := &model.Group{Title: "G2", Slug: "g2"}
	require.NoError(t, groups.Create(ctx, g2))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 26; i++ {
		group := g1
		if i >= 13 {
			group = g2
		}
		p := &model.Post{
			AuthorID:  author.ID,
			GroupID:   &group.ID,
			Text:      fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, posts.Create(ctx, p))
	}

	_, feed, err := feeds.ByGroup(ctx, "g1", 2)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 3)
	assert.Equal(t, 2, feed.Page.Number)
	assert.Equal(t, 2, feed.Page.TotalPages)

	// 全站流第 1 页固定 10 条，第 3 页收尾 6 条
	global, err := feeds.Global(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, global.Posts, 10)
	global, err = feeds.Global(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, global.Posts, 6)

	// 越界页码钳制到末页而不是报错
	global, err = feeds.Global(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, global.Page.Number)
	assert.Len(t, global.Posts, 6)
}

func TestFeedByUnknownSlugOrUsername(t *testing.T) {
	db := setupTestDB(t)
	feeds := NewFeedService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
	)
	ctx := context.Background()

	_, _, err := feeds.ByGroup(ctx, "missing", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, _, err = feeds.ByAuthor(ctx, "missing", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
