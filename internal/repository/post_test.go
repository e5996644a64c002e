package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"blogly/internal/cache"
	"blogly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	post := &models.Post{Title: "Test Post", Content: "Content", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "user_id"}).AddRow(1, "Post 1", "Body", 10))

	post, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Post 1", post.Title)
	assert.Equal(t, uint(10), post.UserID)
	assert.Nil(t, post.User)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(2, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, 2)
	assert.True(t, models.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Recent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC, id DESC LIMIT $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).AddRow(2, "Second", 1).AddRow(1, "First", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).AddRow(1, "Alan", "Alda"))

	posts, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, "Alan Alda", posts[0].User.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 9)
	assert.True(t, models.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SQLite(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alan := seedUser(t, db, "Alan", "Alda")
	joel := seedUser(t, db, "Joel", "Burton")

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"p0", "p1", "p2", "p3", "p4", "p5"} {
		author := alan.ID
		if i%2 == 1 {
			author = joel.ID
		}
		seedPost(t, db, author, title, base.Add(time.Duration(i)*time.Hour))
	}

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "p5", recent[0].Title)
	assert.Equal(t, "p1", recent[4].Title)
	require.NotNil(t, recent[0].User)
	assert.Equal(t, "Joel", recent[0].User.FirstName)

	mine, err := repo.ListByUser(ctx, alan.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "p4", mine[0].Title)

	post := mine[0]
	post.Title = "edited"
	post.Content = "new body"
	require.NoError(t, repo.Update(ctx, &post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, alan.ID, got.UserID)
	assert.True(t, got.CreatedAt.Equal(base.Add(4*time.Hour)))

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	err = repo.Update(ctx, &models.Post{ID: 9999, Title: "x", Content: "y"})
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepository_CacheInvalidatedOnUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = cache.Close() })

	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "Alan", "Alda")
	p := seedPost(t, db, u.ID, "cached", time.Now())

	_, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.PostKey(p.ID)))

	p.Title = "fresh"
	require.NoError(t, repo.Update(ctx, p))
	assert.False(t, mr.Exists(cache.PostKey(p.ID)))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Title)
}
