package service

import (
	"errors"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUsersPage(page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.FindPage(page, limit)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateRole(id uint, role model.UserRole) error {
	switch role {
	case model.Etudiant, model.Professeur, model.Admin:
		return s.UserRepo.UpdateRole(id, role)
	}
	return errors.New("rôle invalide")
}

func (s *UserService) DeleteUser(id uint) error {
	return s.UserRepo.Delete(id)
}
