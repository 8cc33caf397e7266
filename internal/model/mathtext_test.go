package model

import (
	"reflect"
	"testing"
)

func TestTokenizeMath_InlineFormulas(t *testing.T) {
	got := TokenizeMath("Area is $x^2$ where $x$ is positive")
	want := []Segment{
		{Kind: SegmentText, Content: "Area is "},
		{Kind: SegmentInline, Content: "x^2"},
		{Kind: SegmentText, Content: " where "},
		{Kind: SegmentInline, Content: "x"},
		{Kind: SegmentText, Content: " is positive"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments: %+v", got)
	}
	for _, seg := range got {
		if seg.Content == "" {
			t.Fatalf("segment vide émis: %+v", got)
		}
	}
}

func TestTokenizeMath_MixedDisplayAndInline(t *testing.T) {
	got := TokenizeMath("Area is $$x^2$$ where $x$ is positive")
	want := []Segment{
		{Kind: SegmentText, Content: "Area is "},
		{Kind: SegmentDisplay, Content: "x^2"},
		{Kind: SegmentText, Content: " where "},
		{Kind: SegmentInline, Content: "x"},
		{Kind: SegmentText, Content: " is positive"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments: %+v", got)
	}
}

func TestTokenizeMath_DisplayFormula(t *testing.T) {
	got := TokenizeMath("Soit $$x=1$$ la solution")
	want := []Segment{
		{Kind: SegmentText, Content: "Soit "},
		{Kind: SegmentDisplay, Content: "x=1"},
		{Kind: SegmentText, Content: " la solution"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments: %+v", got)
	}
}

func TestTokenizeMath_HTMLPassthrough(t *testing.T) {
	s := "<p>Bonjour $x$</p>"
	got := TokenizeMath(s)
	if len(got) != 1 || got[0].Kind != SegmentHTML || got[0].Content != s {
		t.Fatalf("le HTML doit passer tel quel: %+v", got)
	}
}

func TestTokenizeMath_OrphanDollarStaysLiteral(t *testing.T) {
	got := TokenizeMath("coût $5")
	want := []Segment{
		{Kind: SegmentText, Content: "coût "},
		{Kind: SegmentText, Content: "$5"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments: %+v", got)
	}
}

func TestTokenizeMath_OrphanDoubleDollarStaysLiteral(t *testing.T) {
	got := TokenizeMath("fin$$")
	want := []Segment{
		{Kind: SegmentText, Content: "fin"},
		{Kind: SegmentText, Content: "$$"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segments: %+v", got)
	}
}
