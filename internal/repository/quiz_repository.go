package repository

import (
	"numiviz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(q *model.Quiz) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.Preload("Questions").Where("actif = ?", true).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByModule quiz d'un module dans l'ordre de déverrouillage, rattrapages exclus
func (r *QuizRepository) FindByModule(moduleID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions").
		Where("id_module = ? AND actif = ? AND is_remedial = ?", moduleID, true, false).
		Order("ordre, id").Find(&quizzes).Error
	return quizzes, err
}

// FindRemedialByModule premier quiz de rattrapage du module, nil si aucun
func (r *QuizRepository) FindRemedialByModule(moduleID uint) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.Preload("Questions").
		Where("id_module = ? AND actif = ? AND is_remedial = ?", moduleID, true, true).
		Order("ordre, id").First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) Update(q *model.Quiz) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *QuizRepository) SaveScore(s *model.ScoreQuiz) error {
	return r.DB.Create(s).Error
}

func (r *QuizRepository) ScoresByUser(userID uint) ([]model.ScoreQuiz, error) {
	var scores []model.ScoreQuiz
	err := r.DB.Where("id_utilisateur = ?", userID).Order("created_at desc").Find(&scores).Error
	return scores, err
}

// BestScoreByQuiz meilleur score de l'utilisateur sur un quiz donné
func (r *QuizRepository) BestScoreByQuiz(userID, quizID uint) (*model.ScoreQuiz, error) {
	var s model.ScoreQuiz
	err := r.DB.Where("id_utilisateur = ? AND id_quiz = ?", userID, quizID).
		Order("score desc").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AverageScoreByModule moyenne des meilleurs scores de l'utilisateur sur
// les quiz du module, 0 si aucun score
func (r *QuizRepository) AverageScoreByModule(userID, moduleID uint) (float64, error) {
	var avg *float64
	err := r.DB.Raw(`
		SELECT AVG(best) FROM (
			SELECT MAX(s.score) AS best
			FROM scores_quiz s
			JOIN quiz q ON q.id = s.id_quiz
			WHERE s.id_utilisateur = ? AND q.id_module = ? AND q.actif = 1
			GROUP BY s.id_quiz
		) t`, userID, moduleID).Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// AverageScoreForModule moyenne tous étudiants confondus (tableau de bord)
func (r *QuizRepository) AverageScoreForModule(moduleID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.ScoreQuiz{}).
		Joins("JOIN quiz q ON q.id = scores_quiz.id_quiz").
		Where("q.id_module = ?", moduleID).
		Select("AVG(scores_quiz.score)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
