package service

import (
	"database/sql"
	"errors"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func (s *Service) CreateUser(user *domain.User) error {
	return s.store.CreateUser(user)
}

func (s *Service) GetUser(id int64) (*domain.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("user")
		default:
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) GetUserByEmail(email string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("user")
		default:
			return nil, err
		}
	}

	return user, nil
}

// TeamEmails returns the addresses of every member of a team, for the
// notification publisher.
func (s *Service) TeamEmails(role domain.Role) ([]string, error) {
	users, err := s.store.GetUsersByRole(role)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}

	return emails, nil
}
