package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Delete(t *testing.T) {
	t.Run("decrement is floored at zero", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "comments" WHERE id = \$1`).
			WithArgs("comment_1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE videos SET comment_count = GREATEST\(comment_count - 1, 0\)`).
			WithArgs("video_1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.Delete(context.Background(), "comment_1", "video_1")
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing comment leaves the counter alone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "comments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		deleted, err := repo.Delete(context.Background(), "comment_404", "video_1")
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_ListByVideo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM comments c\s+LEFT JOIN users u`).
		WithArgs("video_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_id", "username", "text", "edited", "created_at", "updated_at", "profile_img"}).
			AddRow("comment_2", "video_1", "bob", "nice", true, now, now, "bob.png").
			AddRow("comment_1", "video_1", "carol", "first", false, now.Add(-time.Minute), now, ""))

	rows, err := repo.ListByVideo(context.Background(), "video_1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Edited)
	assert.Equal(t, "bob.png", rows[0].ProfileImg)
	assert.Equal(t, "first", rows[1].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_SyncVideoCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectExec(`UPDATE "videos" SET "comment_count"=\$1 WHERE id = \$2 AND comment_count <> \$3`).
		WithArgs(int64(2), "video_1", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SyncVideoCount(context.Background(), "video_1", 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
