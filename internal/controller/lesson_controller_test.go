package controller

import (
	"numiviz_backend/internal/model"
	"testing"
	"time"
)

func TestSaveLessonRequest_ToLessonCreate(t *testing.T) {
	pub := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	req := SaveLessonRequest{
		Titre:           "Pivot de Gauss",
		IDModule:        3,
		Ordre:           2,
		Visibilite:      model.VisibilitePlanifie,
		DatePublication: &pub,
	}

	lesson := req.toLesson(0)
	if lesson.ID != 0 {
		t.Fatalf("une création ne porte pas d'id: %d", lesson.ID)
	}
	if lesson.Titre != "Pivot de Gauss" || lesson.IDModule != 3 || lesson.Ordre != 2 {
		t.Fatalf("champs mal projetés: %+v", lesson)
	}
	if lesson.Visibilite != model.VisibilitePlanifie || lesson.DatePublication == nil {
		t.Fatalf("planification perdue: %+v", lesson)
	}
}

func TestSaveLessonRequest_ToLessonUpdateUsesPathID(t *testing.T) {
	req := SaveLessonRequest{Titre: "Méthodes itératives", IDModule: 1}

	lesson := req.toLesson(42)
	if lesson.ID != 42 {
		t.Fatalf("l'id du chemin doit primer: %d", lesson.ID)
	}
}
