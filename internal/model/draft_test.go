package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOpenLessonDraft_SeedsDefaultTextBlock(t *testing.T) {
	d := OpenLessonDraft(nil)
	blocks := d.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("attendu 1 bloc, obtenu %d", len(blocks))
	}
	if blocks[0].Type != BlockText {
		t.Fatalf("type du bloc initial: %s", blocks[0].Type)
	}
}

func TestNewLessonDraft_EmptyLessonStaysEmpty(t *testing.T) {
	// une leçon vidée de ses blocs se sauvegarde vide, sans bloc fantôme
	d := NewLessonDraft(DecodeBlocks("[]"))
	if got := len(d.Blocks()); got != 0 {
		t.Fatalf("attendu 0 bloc, obtenu %d", got)
	}

	contenu, err := EncodeBlocks(d.Blocks())
	if err != nil {
		t.Fatalf("EncodeBlocks: %v", err)
	}
	var doc BlockDocument
	if err := json.Unmarshal([]byte(contenu), &doc); err != nil {
		t.Fatalf("enveloppe illisible: %v", err)
	}
	if doc.Blocks == nil || len(doc.Blocks) != 0 {
		t.Fatalf("l'enveloppe doit porter une liste vide, obtenu %v", doc.Blocks)
	}
}

func TestSelectType_TextOpensEditor(t *testing.T) {
	d := NewLessonDraft(nil)
	b, err := d.SelectType(BlockText)
	if err != nil {
		t.Fatalf("SelectType: %v", err)
	}
	id, editing := d.EditingID()
	if !editing || id != b.ID {
		t.Fatalf("le bloc texte doit passer en édition, editing=%v id=%s", editing, id)
	}
}

func TestSelectType_ManimGoesToCatalog(t *testing.T) {
	d := NewLessonDraft(nil)
	if _, err := d.SelectType(BlockVideoManim); err != nil {
		t.Fatalf("SelectType: %v", err)
	}
	if !d.PendingManim() {
		t.Fatalf("la sélection au catalogue doit être en attente")
	}
	if _, editing := d.EditingID(); editing {
		t.Fatalf("pas d'édition inline pour un bloc manim")
	}
}

func TestCommit_RejectsMismatchedContent(t *testing.T) {
	d := NewLessonDraft(nil)
	b, _ := d.SelectType(BlockText)

	err := d.Commit(b.ID, &VideoContent{URL: "x"})
	if !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("attendu ErrContentMismatch, obtenu %v", err)
	}
}

func TestCommit_ClosesEditor(t *testing.T) {
	d := NewLessonDraft(nil)
	b, _ := d.SelectType(BlockText)

	if err := d.Commit(b.ID, &TextContent{Content: "fini"}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, editing := d.EditingID(); editing {
		t.Fatalf("l'éditeur doit être fermé après commit")
	}

	blocks := d.Blocks()
	last := blocks[len(blocks)-1]
	if last.Content.(*TextContent).Content != "fini" {
		t.Fatalf("contenu non enregistré: %+v", last.Content)
	}
}

func TestEdit_SingleActiveBlock(t *testing.T) {
	d := NewLessonDraft(nil)
	b1, _ := d.SelectType(BlockText)
	b2, _ := d.SelectType(BlockText)

	if err := d.Edit(b1.ID); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if err := d.Edit(b2.ID); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	id, editing := d.EditingID()
	if !editing || id != b2.ID {
		t.Fatalf("un seul bloc actif attendu (%s), obtenu %s", b2.ID, id)
	}
}

func TestDelete_KeepsOrderGaps(t *testing.T) {
	d := NewLessonDraft(nil)
	d.SelectType(BlockText)
	b, _ := d.SelectType(BlockImage)
	d.SelectType(BlockDesmos)

	if err := d.Delete(b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	blocks := d.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("attendu 2 blocs, obtenu %d", len(blocks))
	}
	// l'ordre du dernier bloc n'est pas recompacté
	if blocks[1].Order != 2 {
		t.Fatalf("l'ordre doit garder son trou, obtenu %d", blocks[1].Order)
	}
}

func TestCommitExerciseBlock_AppendsExerciseAndStagedPieces(t *testing.T) {
	d := NewLessonDraft(nil)
	before := len(d.Blocks())

	ex := ExerciseContent{Question: "Calculer det(A)", Solution: "-2", Points: 2, Type: "Application"}
	staged := StagedAttachments{
		Image: ImageContent{URL: "/uploads/image/matrice.png"},
	}

	appended, err := d.CommitExerciseBlock(ex, staged, func(c *ExerciseContent) (uint, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("CommitExerciseBlock: %v", err)
	}
	if len(appended) != 2 {
		t.Fatalf("attendu 2 blocs ajoutés (exercice + image), obtenu %d", len(appended))
	}
	if appended[0].Type != BlockExercice || appended[1].Type != BlockImage {
		t.Fatalf("types ajoutés: %s, %s", appended[0].Type, appended[1].Type)
	}
	if appended[0].Content.(*ExerciseContent).ExerciseID != 42 {
		t.Fatalf("id de l'exercice non reporté: %+v", appended[0].Content)
	}
	if got := len(d.Blocks()); got != before+2 {
		t.Fatalf("taille du brouillon: %d", got)
	}
	if ids := d.CreatedExerciseIDs(); len(ids) != 1 || ids[0] != 42 {
		t.Fatalf("exercices créés: %v", ids)
	}
}

func TestCommitExerciseBlock_CreateFailureAppendsNothing(t *testing.T) {
	d := NewLessonDraft(nil)
	before := d.Blocks()

	_, err := d.CommitExerciseBlock(ExerciseContent{Question: "q"}, StagedAttachments{
		Image: ImageContent{URL: "/uploads/x.png"},
	}, func(c *ExerciseContent) (uint, error) {
		return 0, errors.New("base indisponible")
	})
	if !errors.Is(err, ErrExerciseRejected) {
		t.Fatalf("attendu ErrExerciseRejected, obtenu %v", err)
	}

	after := d.Blocks()
	if len(after) != len(before) {
		t.Fatalf("aucun bloc ne doit être ajouté après un échec, avant=%d après=%d", len(before), len(after))
	}
	if len(d.CreatedExerciseIDs()) != 0 {
		t.Fatalf("aucun exercice ne doit être enregistré")
	}
}

func TestCommitExerciseBlock_DoesNotTouchExistingBlocks(t *testing.T) {
	existing, _ := NewBlock(BlockText)
	existing.Content.(*TextContent).Content = "intro"
	d := NewLessonDraft([]Block{existing})

	_, err := d.CommitExerciseBlock(ExerciseContent{Question: "q"}, StagedAttachments{}, func(c *ExerciseContent) (uint, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("CommitExerciseBlock: %v", err)
	}

	blocks := d.Blocks()
	if blocks[0].ID != existing.ID || blocks[0].Content.(*TextContent).Content != "intro" {
		t.Fatalf("le bloc existant a été modifié: %+v", blocks[0])
	}
}
