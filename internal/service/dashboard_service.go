package service

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"numiviz_backend/pkg/logger"

	"go.uber.org/zap"
)

// DashboardService statistiques agrégées pour l'espace enseignant
type DashboardService struct {
	UserRepo   *repository.UserRepository
	ModuleRepo *repository.ModuleRepository
	QuizRepo   *repository.QuizRepository
}

func NewDashboardService(userRepo *repository.UserRepository, moduleRepo *repository.ModuleRepository, quizRepo *repository.QuizRepository) *DashboardService {
	return &DashboardService{UserRepo: userRepo, ModuleRepo: moduleRepo, QuizRepo: quizRepo}
}

// ModuleStats taux de réussite moyen d'un module
type ModuleStats struct {
	IDModule    uint    `json:"id_module"`
	Titre       string  `json:"titre"`
	SuccessRate float64 `json:"success_rate"`
}

// DashboardStats vue d'ensemble du tableau de bord enseignant
type DashboardStats struct {
	TotalStudents      int64         `json:"total_students"`
	ActiveModules      int64         `json:"active_modules"`
	AverageSuccessRate float64       `json:"average_success_rate"`
	Modules            []ModuleStats `json:"modules"`
}

// Stats agrège le nombre d'étudiants actifs, le nombre de modules et la
// moyenne des scores de quiz par module
func (s *DashboardService) Stats() (*DashboardStats, error) {
	students, err := s.UserRepo.CountByRole(model.Etudiant)
	if err != nil {
		return nil, err
	}
	activeModules, err := s.ModuleRepo.CountActive()
	if err != nil {
		return nil, err
	}

	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalStudents: students,
		ActiveModules: activeModules,
		Modules:       make([]ModuleStats, 0, len(modules)),
	}

	sum := 0.0
	counted := 0
	for _, m := range modules {
		rate, err := s.QuizRepo.AverageScoreForModule(m.ID)
		if err != nil {
			logger.Log.Warn("taux de réussite indisponible",
				zap.Uint("module", m.ID), zap.Error(err))
			continue
		}
		stats.Modules = append(stats.Modules, ModuleStats{
			IDModule:    m.ID,
			Titre:       m.Titre,
			SuccessRate: rate,
		})
		if rate > 0 {
			sum += rate
			counted++
		}
	}
	if counted > 0 {
		stats.AverageSuccessRate = sum / float64(counted)
	}

	return stats, nil
}
