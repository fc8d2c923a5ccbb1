package filestore

import (
	"context"
	"strings"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// UserStore implements repositories.UserRepository over a JSON array file
type UserStore struct {
	file *jsonFile[[]entities.User]
}

// NewUserStore opens the users file at path. When the file does not exist yet
// it is created with the seed users.
func NewUserStore(path string, seed []*entities.User) (*UserStore, error) {
	s := &UserStore{file: newJSONFile[[]entities.User](path)}
	if s.file.exists() {
		return s, nil
	}

	err := s.file.update(func(users *[]entities.User) error {
		*users = make([]entities.User, 0, len(seed))
		for _, u := range seed {
			*users = append(*users, *u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UserStore) Create(ctx context.Context, user *entities.User) error {
	return s.file.update(func(users *[]entities.User) error {
		if indexByEmail(*users, user.Email) >= 0 {
			return apperrors.NewConflictError("email is already registered")
		}
		*users = append(*users, *user)
		return nil
	})
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var found *entities.User
	err := s.file.view(func(users *[]entities.User) error {
		for i := range *users {
			if (*users)[i].ID == id {
				u := (*users)[i]
				found = &u
				return nil
			}
		}
		return apperrors.NewNotFoundError("user not found")
	})
	return found, err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var found *entities.User
	err := s.file.view(func(users *[]entities.User) error {
		if i := indexByEmail(*users, email); i >= 0 {
			u := (*users)[i]
			found = &u
			return nil
		}
		return apperrors.NewNotFoundError("user not found")
	})
	return found, err
}

func (s *UserStore) Update(ctx context.Context, user *entities.User) error {
	return s.file.update(func(users *[]entities.User) error {
		for i := range *users {
			if (*users)[i].ID == user.ID {
				(*users)[i] = *user
				return nil
			}
		}
		return apperrors.NewNotFoundError("user not found")
	})
}

func (s *UserStore) List(ctx context.Context) ([]*entities.User, error) {
	var out []*entities.User
	err := s.file.view(func(users *[]entities.User) error {
		out = make([]*entities.User, len(*users))
		for i := range *users {
			u := (*users)[i]
			out[i] = &u
		}
		return nil
	})
	return out, err
}

func indexByEmail(users []entities.User, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}
