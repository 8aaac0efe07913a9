package repositories

import (
	"context"

	"github.com/campulist/campulist/internal/app/models"
)

type userRepository struct {
	store *Store
}

// NewUserRepository creates the in-memory UserRepository.
func NewUserRepository(store *Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var out *models.User
	err := r.store.View(func(tx *Tx) error {
		if u := tx.User(id); u != nil {
			out = u.Clone()
		}
		return nil
	})
	return out, err
}

func (r *userRepository) FindFirst(ctx context.Context, filter UserFilter) (*models.User, error) {
	var out *models.User
	err := r.store.View(func(tx *Tx) error {
		for _, u := range tx.Users() {
			if u.IsDeleted() {
				continue
			}
			if filter.Role != "" && u.Role != filter.Role {
				continue
			}
			if filter.CampusID != "" && u.CampusID != filter.CampusID {
				continue
			}
			if filter.StudentType != nil && (u.StudentType == nil || *u.StudentType != *filter.StudentType) {
				continue
			}
			out = u.Clone()
			return nil
		}
		return nil
	})
	return out, err
}

func (r *userRepository) ListCampuses(ctx context.Context, activeOnly bool) ([]*models.Campus, error) {
	campuses := []*models.Campus{}
	err := r.store.View(func(tx *Tx) error {
		for _, c := range tx.Campuses() {
			if c.IsDeleted() || (activeOnly && !c.IsActive) {
				continue
			}
			cp := *c
			campuses = append(campuses, &cp)
		}
		return nil
	})
	return campuses, err
}

func (r *userRepository) GetCampus(ctx context.Context, id string) (*models.Campus, error) {
	var out *models.Campus
	err := r.store.View(func(tx *Tx) error {
		if c := tx.Campus(id); c != nil && !c.IsDeleted() {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}
