package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	note := &domain.Notification{
		UserID:  1,
		Title:   "Application Under Review",
		Message: "Quant Five's application to Quant Desk at Acme Capital is now Under Review.",
		Attributes: map[string]string{
			"type":   "APPLICATION_STATUS",
			"status": "REVIEWING",
		},
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(note.UserID, note.Title, note.Message, note.IsRead, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.Create(ctx, note)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), note.ID)
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "message", "is_read", "attributes", "created_on"}).
		AddRow(7, 1, "Application Under Review", "msg", false, []byte(`{"type":"APPLICATION_STATUS"}`), "2026-08-01T00:00:00Z")
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = \\$1").
		WithArgs(int32(1), int32(20), int32(0)).
		WillReturnRows(rows)

	notes, total, err := repo.List(ctx, 1, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, notes, 1)
	assert.Equal(t, "APPLICATION_STATUS", notes[0].Attributes["type"])
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(7), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkAsRead(ctx, 7, 1)
		assert.NoError(t, err)
	})

	t.Run("WrongUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(7), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(ctx, 7, 2)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}
