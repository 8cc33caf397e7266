package repository

import (
	"numiviz_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.Module) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where("actif = ?", true).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) FindAll() ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("actif = ?", true).Order("ordre, id").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByTeacher(teacherID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("id_enseignant = ? AND actif = ?", teacherID, true).Order("ordre, id").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(m *model.Module) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Model(&model.Module{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *ModuleRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).Where("actif = ?", true).Count(&count).Error
	return count, err
}
