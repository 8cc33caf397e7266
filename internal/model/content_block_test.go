package model

import (
	"encoding/json"
	"testing"
)

func TestDefaultContent_KnownTypes(t *testing.T) {
	for _, bt := range BlockTypes() {
		content, err := DefaultContent(bt)
		if err != nil {
			t.Fatalf("DefaultContent(%s): %v", bt, err)
		}
		if content == nil {
			t.Fatalf("DefaultContent(%s): contenu nil", bt)
		}
	}

	if _, err := DefaultContent("inconnu"); err == nil {
		t.Fatalf("type inconnu accepté")
	}
}

func TestDefaultContent_SeedsTypedDefaults(t *testing.T) {
	v, _ := DefaultContent(BlockVideo)
	if v.(*VideoContent).Type != "upload" {
		t.Fatalf("video par défaut: %q", v.(*VideoContent).Type)
	}

	m, _ := DefaultContent(BlockVideoManim)
	mc := m.(*ManimContent)
	if mc.Type != "gauss_elimination" || mc.Parameters == nil {
		t.Fatalf("manim par défaut: %+v", mc)
	}

	f, _ := DefaultContent(BlockFile)
	if f.(*FileContent).Type != "pdf" {
		t.Fatalf("fichier par défaut: %q", f.(*FileContent).Type)
	}

	e, _ := DefaultContent(BlockExercice)
	ec := e.(*ExerciseContent)
	if ec.Type != "Application" || ec.Points != 1 {
		t.Fatalf("exercice par défaut: %+v", ec)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	b1, _ := NewBlock(BlockText)
	b1.Content.(*TextContent).Content = "Bonjour $x^2$"
	b2, _ := NewBlock(BlockVideoManim)
	b2.Order = 1

	contenu, err := EncodeBlocks([]Block{b1, b2})
	if err != nil {
		t.Fatalf("EncodeBlocks: %v", err)
	}

	decoded := DecodeBlocks(contenu)
	if len(decoded) != 2 {
		t.Fatalf("attendu 2 blocs, obtenu %d", len(decoded))
	}
	if decoded[0].Type != BlockText || decoded[1].Type != BlockVideoManim {
		t.Fatalf("types: %s, %s", decoded[0].Type, decoded[1].Type)
	}
	txt, ok := decoded[0].Content.(*TextContent)
	if !ok || txt.Content != "Bonjour $x^2$" {
		t.Fatalf("contenu texte perdu: %+v", decoded[0].Content)
	}
	if decoded[1].Order != 1 {
		t.Fatalf("ordre perdu: %d", decoded[1].Order)
	}
}

func TestEncodeBlocks_NilBecomesEmptyList(t *testing.T) {
	contenu, err := EncodeBlocks(nil)
	if err != nil {
		t.Fatalf("EncodeBlocks(nil): %v", err)
	}

	var doc BlockDocument
	if err := json.Unmarshal([]byte(contenu), &doc); err != nil {
		t.Fatalf("enveloppe illisible: %v", err)
	}
	if doc.SchemaVersion != BlockSchemaVersion {
		t.Fatalf("schema_version: %d", doc.SchemaVersion)
	}
	if doc.Blocks == nil {
		t.Fatalf("blocks doit être [] et non null")
	}
}

func TestDecodeBlocks_Lenient(t *testing.T) {
	cases := []struct {
		name    string
		contenu string
		want    int
	}{
		{"vide", "", 0},
		{"objet sans blocs", "{}", 0},
		{"tableau vide", "[]", 0},
		{"pas du json", "n'importe quoi", 0},
		{"tableau cassé", "[{", 0},
		{"tableau nu hérité", `[{"id":"a","type":"text","content":{"content":"x"},"order":0}]`, 1},
	}
	for _, tc := range cases {
		if got := len(DecodeBlocks(tc.contenu)); got != tc.want {
			t.Fatalf("%s: attendu %d blocs, obtenu %d", tc.name, tc.want, got)
		}
	}
}

func TestDecodeBlocks_SkipsUnknownTypeKeepsSiblings(t *testing.T) {
	contenu := `{"schemaVersion":1,"blocks":[
		{"id":"a","type":"text","content":{"content":"ok"},"order":0},
		{"id":"b","type":"hologramme","content":{},"order":1},
		{"id":"c","type":"desmos","content":{"expression":"y=x"},"order":2}
	]}`

	blocks := DecodeBlocks(contenu)
	if len(blocks) != 2 {
		t.Fatalf("attendu 2 blocs valides, obtenu %d", len(blocks))
	}
	if blocks[0].ID != "a" || blocks[1].ID != "c" {
		t.Fatalf("mauvais blocs conservés: %s, %s", blocks[0].ID, blocks[1].ID)
	}
}

func TestDecodeBlocks_MissingFieldsGetDefaults(t *testing.T) {
	contenu := `{"schemaVersion":1,"blocks":[{"id":"a","type":"video_manim","content":{},"order":0}]}`

	blocks := DecodeBlocks(contenu)
	if len(blocks) != 1 {
		t.Fatalf("attendu 1 bloc, obtenu %d", len(blocks))
	}
	mc, ok := blocks[0].Content.(*ManimContent)
	if !ok {
		t.Fatalf("contenu: %T", blocks[0].Content)
	}
	if mc.Type != "gauss_elimination" {
		t.Fatalf("défaut manim non appliqué: %q", mc.Type)
	}
}

func TestRedactSolutions(t *testing.T) {
	hidden, _ := NewBlock(BlockExercice)
	hc := hidden.Content.(*ExerciseContent)
	hc.Question = "Calculer det(A)"
	hc.Solution = "-2"

	shown, _ := NewBlock(BlockExercice)
	sc := shown.Content.(*ExerciseContent)
	sc.Solution = "x = 1"
	sc.SolutionVisible = true

	text, _ := NewBlock(BlockText)
	text.Content.(*TextContent).Content = "intro"

	blocks := []Block{hidden, shown, text}
	redacted := RedactSolutions(blocks)

	got := redacted[0].Content.(*ExerciseContent)
	if got.Solution != "" {
		t.Fatalf("la solution non dévoilée doit être masquée: %q", got.Solution)
	}
	if got.Question != "Calculer det(A)" {
		t.Fatalf("la question doit rester: %q", got.Question)
	}
	if redacted[1].Content.(*ExerciseContent).Solution != "x = 1" {
		t.Fatalf("une solution dévoilée reste visible")
	}
	if redacted[2].Content.(*TextContent).Content != "intro" {
		t.Fatalf("les autres blocs ne doivent pas changer")
	}

	// les blocs d'origine ne sont pas modifiés
	if blocks[0].Content.(*ExerciseContent).Solution != "-2" {
		t.Fatalf("le bloc d'origine a été modifié")
	}
}

func TestHasManimBlock(t *testing.T) {
	text, _ := NewBlock(BlockText)
	if HasManimBlock([]Block{text}) {
		t.Fatalf("pas d'animation attendue")
	}
	manim, _ := NewBlock(BlockVideoManim)
	if !HasManimBlock([]Block{text, manim}) {
		t.Fatalf("animation non détectée")
	}
}
