package repository

import (
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	List(onlyPublished bool) ([]models.Location, error)
	GetByID(id uint) (*models.Location, error)
	Create(location *models.Location) error
	Delete(id uint) error
}

// GormLocationRepository GORM 实现
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓库
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// List 地点列表
func (r *GormLocationRepository) List(onlyPublished bool) ([]models.Location, error) {
	query := r.db.Model(&models.Location{})
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}
	var locations []models.Location
	if err := query.Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// GetByID 根据 ID 获取地点
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// Create 创建地点
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// Delete 删除地点并将关联文章的地点置空
func (r *GormLocationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}
