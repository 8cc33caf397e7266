package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// BlockType type d'un bloc de contenu de leçon
type BlockType string

const (
	BlockVideo      BlockType = "video"
	BlockVideoManim BlockType = "video_manim"
	BlockText       BlockType = "text"
	BlockImage      BlockType = "image"
	BlockFile       BlockType = "file"
	BlockQuiz       BlockType = "quiz"
	BlockExercice   BlockType = "exercice"
	BlockDesmos     BlockType = "desmos"
)

var ErrUnknownBlockType = errors.New("type de bloc inconnu")

// BlockContent contenu typé d'un bloc, discriminé par BlockType
type BlockContent interface {
	isBlockContent()
}

type VideoContent struct {
	Type        string `json:"type"` // upload | youtube
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ManimContent struct {
	Type        string                 `json:"type"` // identifiant de l'animation dans le catalogue
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
	Duration    string                 `json:"duration"`
}

type TextContent struct {
	Content      string `json:"content"`
	LatexEnabled bool   `json:"latexEnabled"`
}

type ImageContent struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type FileContent struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// QuizBlockQuestion question embarquée dans un bloc quiz (jamais persistée à part)
type QuizBlockQuestion struct {
	Question string          `json:"question"`
	Type     string          `json:"type"` // mcq | bool | text
	Options  []string        `json:"options,omitempty"`
	Correct  json.RawMessage `json:"correct,omitempty"`
}

type QuizContent struct {
	Questions []QuizBlockQuestion `json:"questions"`
}

type ExerciseContent struct {
	ExerciseID      uint   `json:"exerciseId,omitempty"` // id du record exercice persisté
	Question        string `json:"question"`
	Solution        string `json:"solution"`
	Feedback        string `json:"feedback"`
	Type            string `json:"type"`
	Points          int    `json:"points"`
	SolutionVisible bool   `json:"solutionVisible"`
}

type DesmosContent struct {
	Expression string `json:"expression"`
}

func (*VideoContent) isBlockContent()    {}
func (*ManimContent) isBlockContent()    {}
func (*TextContent) isBlockContent()     {}
func (*ImageContent) isBlockContent()    {}
func (*FileContent) isBlockContent()     {}
func (*QuizContent) isBlockContent()     {}
func (*ExerciseContent) isBlockContent() {}
func (*DesmosContent) isBlockContent()   {}

// blockRegistry contenu par défaut de chaque type
var blockRegistry = map[BlockType]func() BlockContent{
	BlockVideo:      func() BlockContent { return &VideoContent{Type: "upload"} },
	BlockVideoManim: func() BlockContent { return &ManimContent{Type: "gauss_elimination", Parameters: map[string]interface{}{}} },
	BlockText:       func() BlockContent { return &TextContent{} },
	BlockImage:      func() BlockContent { return &ImageContent{} },
	BlockFile:       func() BlockContent { return &FileContent{Type: "pdf"} },
	BlockQuiz:       func() BlockContent { return &QuizContent{Questions: []QuizBlockQuestion{}} },
	BlockExercice:   func() BlockContent { return &ExerciseContent{Type: "Application", Points: 1} },
	BlockDesmos:     func() BlockContent { return &DesmosContent{} },
}

// BlockTypes liste des types connus, dans l'ordre d'affichage de l'éditeur
func BlockTypes() []BlockType {
	return []BlockType{
		BlockVideo, BlockVideoManim, BlockText, BlockImage,
		BlockFile, BlockQuiz, BlockExercice, BlockDesmos,
	}
}

// DefaultContent contenu par défaut pour un type donné
func DefaultContent(t BlockType) (BlockContent, error) {
	mk, ok := blockRegistry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
	return mk(), nil
}

// Block élément ordonné du contenu d'une leçon
type Block struct {
	ID      string
	Type    BlockType
	Content BlockContent
	Order   int
}

// NewBlock crée un bloc avec un id frais et le contenu par défaut du type
func NewBlock(t BlockType) (Block, error) {
	content, err := DefaultContent(t)
	if err != nil {
		return Block{}, err
	}
	return Block{
		ID:      uuid.New().String(),
		Type:    t,
		Content: content,
	}, nil
}

type blockJSON struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
	Order   int             `json:"order"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(b.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockJSON{
		ID:      b.ID,
		Type:    b.Type,
		Content: content,
		Order:   b.Order,
	})
}

// UnmarshalJSON décode le contenu selon le type. Les champs absents gardent
// la valeur par défaut du type, les champs étrangers sont ignorés.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	content, err := DefaultContent(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Content) > 0 {
		if err := json.Unmarshal(raw.Content, content); err != nil {
			return err
		}
	}

	b.ID = raw.ID
	b.Type = raw.Type
	b.Content = content
	b.Order = raw.Order
	return nil
}

// BlockSchemaVersion version courante de l'enveloppe stockée dans `contenu`
const BlockSchemaVersion = 1

// BlockDocument enveloppe versionnée persistée dans la colonne contenu
type BlockDocument struct {
	SchemaVersion int     `json:"schemaVersion"`
	Blocks        []Block `json:"blocks"`
}

// EncodeBlocks sérialise les blocs dans l'enveloppe v1
func EncodeBlocks(blocks []Block) (string, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	data, err := json.Marshal(BlockDocument{
		SchemaVersion: BlockSchemaVersion,
		Blocks:        blocks,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBlocks lit une colonne contenu. Accepte l'enveloppe versionnée et,
// pour les anciennes leçons, un tableau JSON nu. Un contenu illisible donne
// une liste vide, un bloc illisible est ignoré: les métadonnées de la leçon
// restent exploitables quoi qu'il arrive.
func DecodeBlocks(contenu string) []Block {
	if contenu == "" {
		return []Block{}
	}

	var rawList []json.RawMessage

	var doc struct {
		SchemaVersion int               `json:"schemaVersion"`
		Blocks        []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(contenu), &doc); err == nil && doc.Blocks != nil {
		rawList = doc.Blocks
	} else if err := json.Unmarshal([]byte(contenu), &rawList); err != nil {
		return []Block{}
	}

	blocks := make([]Block, 0, len(rawList))
	for _, raw := range rawList {
		var b Block
		if err := json.Unmarshal(raw, &b); err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// RedactSolutions copie des blocs où la solution des exercices non
// dévoilés (solutionVisible à faux) est effacée, pour l'affichage
// étudiant. Les blocs d'origine ne sont pas modifiés.
func RedactSolutions(blocks []Block) []Block {
	out := append([]Block(nil), blocks...)
	for i, b := range out {
		ec, ok := b.Content.(*ExerciseContent)
		if !ok || ec.SolutionVisible {
			continue
		}
		masked := *ec
		masked.Solution = ""
		out[i].Content = &masked
	}
	return out
}

// HasManimBlock vrai si la liste contient au moins un bloc video_manim
func HasManimBlock(blocks []Block) bool {
	for _, b := range blocks {
		if b.Type == BlockVideoManim {
			return true
		}
	}
	return false
}
