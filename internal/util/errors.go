package util

import "errors"

var (
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrEmailRegistered    = errors.New("cet email est déjà enregistré")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrModuleNotFound     = errors.New("module introuvable")
	ErrLessonNotFound     = errors.New("leçon introuvable")
	ErrLessonTitleMissing = errors.New("le titre de la leçon est requis")
	ErrExerciseNotFound   = errors.New("exercice introuvable")
	ErrQuizNotFound       = errors.New("quiz introuvable")
	ErrEventNotFound      = errors.New("événement introuvable")
	ErrInvalidMatrix      = errors.New("matrice invalide")
	ErrSingularMatrix     = errors.New("matrice singulière")
	ErrDimensionMismatch  = errors.New("dimensions incompatibles")
	ErrNoSignChange       = errors.New("pas de changement de signe sur l'intervalle")
	ErrDivergence         = errors.New("la méthode diverge")
)
