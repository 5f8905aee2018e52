package persistence

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/identity"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormUserRepository stores dashboard logins in the users table
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	return first[models.UserModel, identity.User](r.db.WithContext(ctx), "id = ?", id)
}

// FindByEmail looks the user up by normalized email, so lookups ignore case
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return first[models.UserModel, identity.User](r.db.WithContext(ctx), "email = ?", identity.NormalizeEmail(email))
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserFromDomain(user)
	if err := saveModel(r.db.WithContext(ctx), model, user.IsNew()); err != nil {
		return err
	}
	user.ID = model.ID
	return nil
}
