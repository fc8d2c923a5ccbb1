package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// Promotion is a canned promotional message sent by the scheduler
type Promotion struct {
	Title   string
	Message string
	Data    map[string]interface{}
}

// DefaultPromotions are the promotions of the local businesses
var DefaultPromotions = []Promotion{
	{
		Title:   "🍽️ ¡Hoy Peru Cook ofrece promociones especiales!",
		Message: "Descuento del 20% en todos los platos peruanos. ¡Ven y disfruta de nuestros sabores auténticos!",
		Data:    map[string]interface{}{"restaurant": "Peru Cook", "discount": 20, "validUntil": "hoy"},
	},
	{
		Title:   "🏨 ¡Hotel Casa Colonial con ofertas increíbles!",
		Message: "Habitaciones disponibles con 30% de descuento. ¡Reserva ahora y vive una experiencia única!",
		Data:    map[string]interface{}{"hotel": "Casa Colonial", "discount": 30, "location": "Buga"},
	},
	{
		Title:   "🎯 ¡Nuevas actividades disponibles en Buga!",
		Message: "Tours guiados por la Basílica del Señor de los Milagros. ¡Descubre la historia de este lugar sagrado!",
		Data:    map[string]interface{}{"activity": "Tour Basílica", "location": "Buga", "type": "cultural"},
	},
	{
		Title:   "🌟 ¡Chuleta Don Carlos te espera!",
		Message: "La mejor chuleta valluna de la región. ¡Ven y prueba nuestros sabores tradicionales!",
		Data:    map[string]interface{}{"restaurant": "Chuleta Don Carlos", "specialty": "chuleta valluna"},
	},
	{
		Title:   "☕ ¡Panadería Casita del Pandebono!",
		Message: "Pandebonos frescos recién horneados. ¡El sabor auténtico del Valle del Cauca te espera!",
		Data:    map[string]interface{}{"bakery": "Casita del Pandebono", "product": "pandebonos"},
	},
}

// NotificationService handles per-user notifications
type NotificationService struct {
	repo       repositories.NotificationRepository
	pageSize   int
	promotions []Promotion
	now        func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository, pageSize int) *NotificationService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &NotificationService{
		repo:       repo,
		pageSize:   pageSize,
		promotions: DefaultPromotions,
		now:        time.Now,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RegisterUser subscribes a user to automatic notifications. Registering
// twice is not an error.
func (s *NotificationService) RegisterUser(ctx context.Context, userID, userName string) error {
	if err := requireFields(
		field{"userId", userID != ""},
		field{"userName", userName != ""},
	); err != nil {
		return err
	}

	added, err := s.repo.AddSubscriber(ctx, &entities.NotificationSubscriber{
		UserID:       userID,
		UserName:     userName,
		RegisteredAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}
	if added {
		log.Info().Str("user_id", userID).Msg("User registered for notifications")
	}
	return nil
}

// List returns one page of the user's notifications, newest first. A
// non-positive limit selects the default page size.
func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) (*entities.NotificationPage, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}

	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := &entities.NotificationPage{Total: len(all), Notifications: []*entities.Notification{}}
	for _, n := range all {
		if !n.Read {
			page.Unread++
		}
	}

	end := offset + limit
	if offset < len(all) {
		page.Notifications = all[offset:min(end, len(all))]
	}
	page.HasMore = end < len(all)
	return page, nil
}

// Create stores a notification built by the caller
func (s *NotificationService) Create(ctx context.Context, n *entities.Notification) error {
	if err := requireFields(
		field{"userId", n.UserID != ""},
		field{"type", n.Type != ""},
		field{"title", n.Title != ""},
		field{"message", n.Message != ""},
	); err != nil {
		return err
	}
	s.stamp(n)
	return s.repo.Create(ctx, n)
}

// FavoriteAdded notifies a user about a place they just saved
func (s *NotificationService) FavoriteAdded(ctx context.Context, userID, placeName string, placeType entities.PlaceType) (*entities.Notification, error) {
	if err := requireFields(
		field{"userId", userID != ""},
		field{"placeName", placeName != ""},
		field{"placeType", placeType != ""},
	); err != nil {
		return nil, err
	}

	n := &entities.Notification{
		UserID:  userID,
		Type:    entities.NotificationFavorite,
		Title:   "💖 ¡Favorito añadido!",
		Message: fmt.Sprintf("Has añadido %s a tus favoritos. Podrás encontrarlo fácilmente en tu perfil.", placeName),
		Data: map[string]interface{}{
			"placeName": placeName,
			"placeType": placeType,
			"action":    "added",
		},
	}
	s.stamp(n)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkRead marks one notification of the user as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*entities.Notification, error) {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return nil, err
	}
	return s.repo.MarkRead(ctx, id, userID, s.now().UTC())
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now().UTC())
}

// Delete removes one notification of the user
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, userID)
}

// SendPromotions sends one random promotion to every subscriber in a single
// write and returns how many were sent.
func (s *NotificationService) SendPromotions(ctx context.Context) (int, error) {
	subscribers, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return 0, err
	}
	if len(subscribers) == 0 || len(s.promotions) == 0 {
		return 0, nil
	}

	batch := make([]*entities.Notification, 0, len(subscribers))
	for _, sub := range subscribers {
		promo := s.pickPromotion()
		n := &entities.Notification{
			UserID:   sub.UserID,
			Type:     entities.NotificationPromotion,
			Title:    promo.Title,
			Message:  promo.Message,
			Data:     promo.Data,
			Priority: entities.PriorityHigh,
		}
		s.stamp(n)
		batch = append(batch, n)
	}

	if err := s.repo.Create(ctx, batch...); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (s *NotificationService) pickPromotion() Promotion {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.promotions[s.rand.Intn(len(s.promotions))]
}

func (s *NotificationService) stamp(n *entities.Notification) {
	n.ID = uuid.New().String()
	if n.Data == nil {
		n.Data = map[string]interface{}{}
	}
	if n.Priority == "" {
		n.Priority = entities.PriorityNormal
	}
	n.Read = false
	n.ReadAt = nil
	n.CreatedAt = s.now().UTC()
}
