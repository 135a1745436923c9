package users

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/angelmondragon/favorites-catalog/pkg/security"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, cursor string, limit int) ([]models.User, string, error)
	Update(ctx context.Context, id uint, dto UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes user operations returning serialized users.
type Service interface {
	Create(ctx context.Context, input CreateUserDTO) (*UserDTO, error)
	Get(ctx context.Context, id uint) (*UserDTO, error)
	GetByEmail(ctx context.Context, email string) (*UserDTO, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[UserDTO], error)
	Update(ctx context.Context, id uint, input UpdateUserDTO) (*UserDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   userRepository
	hasher security.Hasher
	logg   *logger.Logger
}

// NewService builds a user service. Passwords are hashed with hasher before
// they are stored.
func NewService(repo userRepository, hasher security.Hasher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository is required")
	}
	if hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password hasher is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, hasher: hasher, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserDTO) (*UserDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	input.Password = hash

	user, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user created")
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[UserDTO], error) {
	rows, next, err := s.repo.List(ctx, params.Cursor, params.Limit)
	if err != nil {
		return pagination.Page[UserDTO]{}, err
	}
	items := make([]UserDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return pagination.Page[UserDTO]{Items: items, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateUserDTO) (*UserDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		input.Password = &hash
	}

	user, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(s.logg.WithUserID(ctx, id), "changed_fields", len(input.Changes()))
	s.logg.Info(ctx, "user updated")
	return FromModel(user), nil
}

// Delete removes the user and cascades to their favorites.
func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithUserID(ctx, id), "user deleted")
	return nil
}
