package repository

import (
	"errors"

	"roadmap_learner_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByFilters(filters model.UserFilters) ([]model.User, error) {
	db := r.DB.Model(&model.User{})
	if filters.ID != nil {
		db = db.Where("id = ?", *filters.ID)
	}
	if filters.Email != nil {
		db = db.Where("email = ?", *filters.Email)
	}
	if filters.IsActive != nil {
		db = db.Where("is_active = ?", *filters.IsActive)
	}

	var users []model.User
	err := db.Find(&users).Error
	return users, err
}

func (r *UserRepository) GetAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(id string, updates map[string]interface{}) (*model.User, error) {
	result := r.DB.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

func (r *UserRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.User{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
