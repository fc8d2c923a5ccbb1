package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

func newNotificationService(t *testing.T) *services.NotificationService {
	t.Helper()
	store, err := filestore.NewNotificationStore(filepath.Join(t.TempDir(), "notifications.json"))
	require.NoError(t, err)
	return services.NewNotificationService(store, 20)
}

func TestNotificationService_ListPagination(t *testing.T) {
	ctx := context.Background()
	service := newNotificationService(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, service.Create(ctx, &entities.Notification{
			UserID:  "u1",
			Type:    entities.NotificationSystem,
			Title:   fmt.Sprintf("title %d", i),
			Message: "hello",
		}))
		time.Sleep(time.Millisecond)
	}

	page, err := service.List(ctx, "u1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 5, page.Unread)
	assert.True(t, page.HasMore)
	require.Len(t, page.Notifications, 2)
	assert.Equal(t, "title 4", page.Notifications[0].Title)
	assert.Equal(t, entities.PriorityNormal, page.Notifications[0].Priority)

	page, err = service.List(ctx, "u1", 2, 4)
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 1)
	assert.False(t, page.HasMore)

	page, err = service.List(ctx, "u1", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Notifications)
	assert.NotNil(t, page.Notifications)

	page, err = service.List(ctx, "nobody", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestNotificationService_CreateValidation(t *testing.T) {
	service := newNotificationService(t)

	err := service.Create(context.Background(), &entities.Notification{UserID: "u1", Title: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "type, message")
}

func TestNotificationService_ReadAndDelete(t *testing.T) {
	ctx := context.Background()
	service := newNotificationService(t)

	first, err := service.FavoriteAdded(ctx, "u1", "Peru Cook", entities.PlaceRestaurant)
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationFavorite, first.Type)
	assert.Equal(t, "added", first.Data["action"])
	assert.Contains(t, first.Message, "Peru Cook")

	_, err = service.FavoriteAdded(ctx, "u1", "Hotel Guadalajara", entities.PlaceHotel)
	require.NoError(t, err)

	read, err := service.MarkRead(ctx, first.ID, "u1")
	require.NoError(t, err)
	assert.True(t, read.Read)
	assert.NotNil(t, read.ReadAt)

	_, err = service.MarkRead(ctx, first.ID, "u2")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
	assert.True(t, apperrors.Is(service.Delete(ctx, first.ID, "u2"), apperrors.ErrorTypeForbidden))

	updated, err := service.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	page, err := service.List(ctx, "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Unread)

	require.NoError(t, service.Delete(ctx, first.ID, "u1"))
	assert.True(t, apperrors.Is(service.Delete(ctx, first.ID, "u1"), apperrors.ErrorTypeNotFound))
}

func TestNotificationService_SendPromotions(t *testing.T) {
	ctx := context.Background()
	service := newNotificationService(t)

	sent, err := service.SendPromotions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	require.NoError(t, service.RegisterUser(ctx, "u1", "Ana"))
	require.NoError(t, service.RegisterUser(ctx, "u1", "Ana"))
	require.NoError(t, service.RegisterUser(ctx, "u2", "Luis"))
	assert.True(t, apperrors.Is(service.RegisterUser(ctx, "u3", ""), apperrors.ErrorTypeValidation))

	sent, err = service.SendPromotions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	for _, user := range []string{"u1", "u2"} {
		page, err := service.List(ctx, user, 0, 0)
		require.NoError(t, err)
		require.Len(t, page.Notifications, 1)
		assert.Equal(t, entities.NotificationPromotion, page.Notifications[0].Type)
		assert.Equal(t, entities.PriorityHigh, page.Notifications[0].Priority)
	}
}

func TestPromotionScheduler_FiresAfterInitialDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service := newNotificationService(t)
	require.NoError(t, service.RegisterUser(ctx, "u1", "Ana"))

	scheduler := services.NewPromotionScheduler(service, 5*time.Millisecond, time.Hour)
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		page, err := service.List(ctx, "u1", 0, 0)
		return err == nil && page.Total == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
