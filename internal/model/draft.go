package model

import (
	"errors"
	"fmt"
)

var (
	ErrBlockNotFound    = errors.New("bloc introuvable")
	ErrContentMismatch  = errors.New("le contenu ne correspond pas au type du bloc")
	ErrExerciseRejected = errors.New("création de l'exercice refusée")
)

type draftState int

const (
	draftIdle draftState = iota
	draftEditing
)

// LessonDraft état d'édition d'une leçon: la liste des blocs plus au plus
// un bloc en cours d'édition. L'unicité du bloc actif est garantie par
// construction, pas par convention.
type LessonDraft struct {
	blocks    []Block
	state     draftState
	editingID string

	// sélection en attente dans le catalogue Manim (pas d'édition inline)
	pendingManim bool

	// exercices persistés pendant ce brouillon, pour la compensation
	// si la sauvegarde de la leçon échoue ensuite
	createdExercises []uint
}

// NewLessonDraft ouvre un brouillon sur les blocs fournis, tels quels.
// Une sauvegarde réencode exactement ce qui a été soumis: une leçon
// vidée de ses blocs reste vide.
func NewLessonDraft(blocks []Block) *LessonDraft {
	return &LessonDraft{blocks: append([]Block(nil), blocks...)}
}

// OpenLessonDraft ouvre un brouillon pour l'éditeur. Une leçon vide
// reçoit un bloc texte par défaut pour que l'éditeur ne démarre jamais
// sur du vide; ce bloc n'existe que dans l'éditeur tant qu'il n'est pas
// sauvegardé.
func OpenLessonDraft(blocks []Block) *LessonDraft {
	d := NewLessonDraft(blocks)
	if len(d.blocks) == 0 {
		b, _ := NewBlock(BlockText)
		b.Order = 0
		d.blocks = append(d.blocks, b)
	}
	return d
}

// Blocks copie de la liste courante
func (d *LessonDraft) Blocks() []Block {
	return append([]Block(nil), d.blocks...)
}

// EditingID id du bloc actif, faux si aucun
func (d *LessonDraft) EditingID() (string, bool) {
	if d.state != draftEditing {
		return "", false
	}
	return d.editingID, true
}

// PendingManim vrai si l'auteur doit encore choisir une animation au catalogue
func (d *LessonDraft) PendingManim() bool {
	return d.pendingManim
}

// SelectType ajoute un bloc du type demandé en fin de liste.
// Un bloc texte passe directement en édition inline; un bloc video_manim
// renvoie vers le catalogue au lieu d'ouvrir un éditeur.
func (d *LessonDraft) SelectType(t BlockType) (Block, error) {
	b, err := NewBlock(t)
	if err != nil {
		return Block{}, err
	}
	b.Order = len(d.blocks)
	d.blocks = append(d.blocks, b)

	switch t {
	case BlockText:
		d.state = draftEditing
		d.editingID = b.ID
	case BlockVideoManim:
		d.pendingManim = true
	}
	return b, nil
}

// Edit active l'édition du bloc donné; tout autre bloc actif est
// implicitement validé tel quel.
func (d *LessonDraft) Edit(id string) error {
	if d.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	d.state = draftEditing
	d.editingID = id
	return nil
}

// Commit enregistre le contenu du bloc et referme l'éditeur.
func (d *LessonDraft) Commit(id string, content BlockContent) error {
	i := d.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if !contentMatches(d.blocks[i].Type, content) {
		return fmt.Errorf("%w: bloc %s (%s)", ErrContentMismatch, id, d.blocks[i].Type)
	}
	d.blocks[i].Content = content
	d.state = draftIdle
	d.editingID = ""
	d.pendingManim = false
	return nil
}

// Cancel referme l'éditeur en abandonnant les modifications en cours.
func (d *LessonDraft) Cancel() {
	d.state = draftIdle
	d.editingID = ""
	d.pendingManim = false
}

// Delete retire le bloc. Les valeurs Order des blocs restants sont
// conservées telles quelles: les trous sont assumés.
func (d *LessonDraft) Delete(id string) error {
	i := d.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	if d.editingID == id {
		d.state = draftIdle
		d.editingID = ""
	}
	return nil
}

// StagedAttachments pièces préparées avec un exercice; seules les pièces
// non vides deviennent des blocs
type StagedAttachments struct {
	Image ImageContent
	File  FileContent
	Video VideoContent
	Text  TextContent
}

// CommitExerciseBlock sauvegarde d'un exercice en plusieurs blocs.
// Le record exercice est créé d'abord via create; en cas d'échec rien
// n'est ajouté au brouillon. Sinon le bloc exercice puis les pièces non
// vides (image, fichier, vidéo, texte, dans cet ordre) sont ajoutés en fin
// de liste, chacun avec l'ordre courant. Les blocs existants ne sont
// jamais modifiés.
func (d *LessonDraft) CommitExerciseBlock(ex ExerciseContent, staged StagedAttachments, create func(*ExerciseContent) (uint, error)) ([]Block, error) {
	id, err := create(&ex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExerciseRejected, err)
	}
	ex.ExerciseID = id
	d.createdExercises = append(d.createdExercises, id)

	var appended []Block
	appendBlock := func(t BlockType, content BlockContent) {
		b := Block{ID: GenerateUUID(), Type: t, Content: content, Order: len(d.blocks)}
		d.blocks = append(d.blocks, b)
		appended = append(appended, b)
	}

	appendBlock(BlockExercice, &ex)
	if staged.Image.URL != "" {
		img := staged.Image
		appendBlock(BlockImage, &img)
	}
	if staged.File.URL != "" {
		f := staged.File
		appendBlock(BlockFile, &f)
	}
	if staged.Video.URL != "" {
		v := staged.Video
		appendBlock(BlockVideo, &v)
	}
	if staged.Text.Content != "" {
		t := staged.Text
		appendBlock(BlockText, &t)
	}

	d.state = draftIdle
	d.editingID = ""
	return appended, nil
}

// CreatedExerciseIDs exercices persistés pendant ce brouillon
func (d *LessonDraft) CreatedExerciseIDs() []uint {
	return append([]uint(nil), d.createdExercises...)
}

func (d *LessonDraft) indexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func contentMatches(t BlockType, c BlockContent) bool {
	switch c.(type) {
	case *VideoContent:
		return t == BlockVideo
	case *ManimContent:
		return t == BlockVideoManim
	case *TextContent:
		return t == BlockText
	case *ImageContent:
		return t == BlockImage
	case *FileContent:
		return t == BlockFile
	case *QuizContent:
		return t == BlockQuiz
	case *ExerciseContent:
		return t == BlockExercice
	case *DesmosContent:
		return t == BlockDesmos
	}
	return false
}
