package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"numiviz_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	progressCacheTTL      = 5 * time.Minute
	progressWriteInterval = 2 * time.Second
)

// CanAdvance règle d'accès à la leçon suivante: un enseignant passe
// toujours, une leçon sans animation Manim ne bloque jamais, sinon il
// faut avoir visionné au moins 90%.
func CanAdvance(role model.UserRole, hasManim bool, watchedPercent float64) bool {
	if role == model.Professeur || role == model.Admin {
		return true
	}
	if !hasManim {
		return true
	}
	return watchedPercent >= model.VideoWatchedThreshold
}

// progressKey une entrée de sink par (utilisateur, leçon)
type progressKey struct {
	userID   uint
	lessonID uint
}

type progressEntry struct {
	lastStored float64
	lastWrite  time.Time
}

// ProgressSink absorbe le flux de rapports de visionnage. Un rapport est
// écrit immédiatement quand il franchit un palier de 10% ou atteint la
// fin (>=99 arrondi à 100); sinon au plus une écriture toutes les 2s par
// couple (utilisateur, leçon). La valeur stockée ne régresse jamais.
type ProgressSink struct {
	mu      sync.Mutex
	entries map[progressKey]*progressEntry
	now     func() time.Time
}

func NewProgressSink() *ProgressSink {
	return &ProgressSink{
		entries: make(map[progressKey]*progressEntry),
		now:     time.Now,
	}
}

// Tracked vrai si le couple (utilisateur, leçon) a déjà une entrée
func (s *ProgressSink) Tracked(userID, lessonID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[progressKey{userID: userID, lessonID: lessonID}]
	return ok
}

// Prime initialise l'entrée avec la valeur déjà stockée en base, pour
// qu'un sink vide après redémarrage n'accepte pas un rapport plus bas.
// La fenêtre d'écriture n'est pas consommée.
func (s *ProgressSink) Prime(userID, lessonID uint, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey{userID: userID, lessonID: lessonID}
	e, ok := s.entries[key]
	if !ok {
		e = &progressEntry{}
		s.entries[key] = e
	}
	if percent > e.lastStored {
		e.lastStored = percent
	}
}

// Accept décide si le rapport doit être persisté et avec quelle valeur.
func (s *ProgressSink) Accept(userID, lessonID uint, percent float64) (float64, bool) {
	if percent < 0 {
		percent = 0
	}
	if percent >= 99 {
		percent = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey{userID: userID, lessonID: lessonID}
	e, ok := s.entries[key]
	if !ok {
		e = &progressEntry{}
		s.entries[key] = e
	}

	// jamais de retour en arrière
	if percent <= e.lastStored {
		return e.lastStored, false
	}

	now := s.now()
	crossed := math.Floor(percent/10) > math.Floor(e.lastStored/10)
	completed := percent >= 100

	if !crossed && !completed && now.Sub(e.lastWrite) < progressWriteInterval {
		return e.lastStored, false
	}

	e.lastStored = percent
	e.lastWrite = now
	return percent, true
}

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	QuizRepo     *repository.QuizRepository
	Sink         *ProgressSink
	Redis        *redis.Client
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository, quizRepo *repository.QuizRepository, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		QuizRepo:     quizRepo,
		Sink:         NewProgressSink(),
		Redis:        rdb,
	}
}

// ReportVideo enregistre un rapport de visionnage, filtré par le sink.
// Au premier rapport d'un couple (utilisateur, leçon), le sink est
// réamorcé depuis la base pour préserver la monotonie entre deux
// démarrages du serveur.
func (s *ProgressService) ReportVideo(userID, moduleID, lessonID uint, percent float64) (*model.Progression, error) {
	if !s.Sink.Tracked(userID, lessonID) {
		if p, err := s.ProgressRepo.FindByUserLesson(userID, lessonID); err == nil {
			s.Sink.Prime(userID, lessonID, p.ProgressionVideo)
		}
	}

	value, store := s.Sink.Accept(userID, lessonID, percent)
	if !store {
		// rapport absorbé, l'état courant fait foi
		p, err := s.ProgressRepo.FindByUserLesson(userID, lessonID)
		if err != nil {
			return &model.Progression{
				IDUtilisateur: userID, IDModule: moduleID, IDLecon: lessonID,
				ProgressionVideo: value,
			}, nil
		}
		return p, nil
	}

	p := &model.Progression{
		IDUtilisateur:    userID,
		IDModule:         moduleID,
		IDLecon:          lessonID,
		ProgressionVideo: value,
		Termine:          value >= model.VideoWatchedThreshold,
	}
	if err := s.ProgressRepo.Upsert(p); err != nil {
		return nil, err
	}

	s.invalidateCache(userID, moduleID)
	return p, nil
}

// ModuleProgress synthèse 70% vidéo / 30% quiz, mise en cache
func (s *ProgressService) ModuleProgress(userID, moduleID uint) (*model.ModuleProgress, error) {
	ctx := context.Background()
	cacheKey := s.cacheKey(userID, moduleID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var mp model.ModuleProgress
			if err := json.Unmarshal([]byte(cached), &mp); err == nil {
				return &mp, nil
			}
		}
	}

	lessons, err := s.LessonRepo.FindPublishedByModule(moduleID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ProgressRepo.FindByUserModule(userID, moduleID)
	if err != nil {
		return nil, err
	}

	byLesson := make(map[uint]model.Progression, len(rows))
	for _, r := range rows {
		byLesson[r.IDLecon] = r
	}

	videoSum := 0.0
	watched := 0
	for _, l := range lessons {
		p := byLesson[l.ID]
		videoSum += p.ProgressionVideo
		if p.ProgressionVideo >= model.VideoWatchedThreshold {
			watched++
		}
	}
	videoAvg := 0.0
	if len(lessons) > 0 {
		videoAvg = videoSum / float64(len(lessons))
	}

	quizAvg, err := s.QuizRepo.AverageScoreByModule(userID, moduleID)
	if err != nil {
		return nil, err
	}

	mp := &model.ModuleProgress{
		IDModule:       moduleID,
		VideoAverage:   videoAvg,
		QuizAverage:    quizAvg,
		Overall:        0.7*videoAvg + 0.3*quizAvg,
		LessonsWatched: watched,
		LessonsTotal:   len(lessons),
	}

	if s.Redis != nil {
		if data, err := json.Marshal(mp); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, progressCacheTTL).Err(); err != nil {
				logger.Log.Warn("cache progression inaccessible", zap.Error(err))
			}
		}
	}

	return mp, nil
}

// LessonWatched pourcentage visionné sur une leçon, 0 si aucun rapport
func (s *ProgressService) LessonWatched(userID, lessonID uint) float64 {
	p, err := s.ProgressRepo.FindByUserLesson(userID, lessonID)
	if err != nil {
		return 0
	}
	return p.ProgressionVideo
}

func (s *ProgressService) cacheKey(userID, moduleID uint) string {
	return fmt.Sprintf("numiviz:progress:%d:%d", userID, moduleID)
}

func (s *ProgressService) invalidateCache(userID, moduleID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), s.cacheKey(userID, moduleID)).Err(); err != nil {
		logger.Log.Warn("invalidation cache progression échouée", zap.Error(err))
	}
}
