package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRepository_Like(t *testing.T) {
	t.Run("first like bumps the counter in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO video_likes .+ ON CONFLICT \(video_id, username\) DO NOTHING`).
			WithArgs("video_1", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE videos SET like_count = like_count \+ 1`).
			WithArgs("video_1").
			WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(5))
		mock.ExpectCommit()

		likes, err := repo.Like(context.Background(), "video_1", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(5), likes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat like rolls back without touching counters", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO video_likes`).
			WithArgs("video_1", "bob").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.Like(context.Background(), "video_1", "bob")
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO video_likes`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE videos SET like_count`).WillReturnError(errors.New("timeout"))
		mock.ExpectRollback()

		_, err := repo.Like(context.Background(), "video_1", "bob")
		assert.EqualError(t, err, "timeout")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEngagementRepository_RecordView(t *testing.T) {
	t.Run("first view counts", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO video_views`).
			WithArgs("video_1", "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE videos SET view_count = view_count \+ 1`).
			WithArgs("video_1").
			WillReturnRows(sqlmock.NewRows([]string{"view_count"}).AddRow(8))
		mock.ExpectCommit()

		views, counted, err := repo.RecordView(context.Background(), "video_1", "bob")
		require.NoError(t, err)
		assert.True(t, counted)
		assert.Equal(t, int64(8), views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat view reads the unchanged counter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEngagementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO video_views`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT view_count FROM videos`).
			WithArgs("video_1").
			WillReturnRows(sqlmock.NewRows([]string{"view_count"}).AddRow(8))
		mock.ExpectCommit()

		views, counted, err := repo.RecordView(context.Background(), "video_1", "bob")
		require.NoError(t, err)
		assert.False(t, counted)
		assert.Equal(t, int64(8), views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
