package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_ListConversations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WITH thread AS .+ ROW_NUMBER\(\) OVER \(PARTITION BY t.peer .+ WHERE r.rn = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"peer", "last_text", "last_at", "last_from", "unread_count", "image_url"}).
			AddRow("carol", "see you", now, "alice", 0, "").
			AddRow("bob", "hi", now.Add(-time.Hour), "bob", 2, "bob.png"))

	rows, err := repo.ListConversations(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "carol", rows[0].Peer)
	assert.Equal(t, "alice", rows[0].LastFrom)
	assert.Equal(t, int64(0), rows[0].UnreadCount)
	assert.Equal(t, "bob", rows[1].Peer)
	assert.Equal(t, int64(2), rows[1].UnreadCount)
	assert.Equal(t, "bob.png", rows[1].ImageURL)
	assert.True(t, rows[1].LastAt.Equal(now.Add(-time.Hour)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_DeleteUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectExec(`DELETE FROM "messages" WHERE id = \$1 AND from_username = \$2 AND is_read = \$3`).
		WithArgs("msg_1", "alice", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteUnread(context.Background(), "msg_1", "alice")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectExec(`UPDATE "messages" SET "is_read"=\$1,"read_at"=NOW\(\) WHERE`).
		WithArgs(true, "bob", "alice", false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	marked, err := repo.MarkRead(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
