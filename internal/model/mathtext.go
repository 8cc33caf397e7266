package model

import "strings"

type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentInline
	SegmentDisplay
	SegmentHTML
)

// Segment fragment d'un texte de leçon après découpage des formules
type Segment struct {
	Kind    SegmentKind
	Content string
}

// TokenizeMath découpe un texte en segments texte / formule inline ($...$)
// / formule display ($$...$$). Un texte contenant du HTML est rendu tel
// quel sans découpage. Un délimiteur orphelin reste du texte littéral: la
// fonction ne renvoie jamais d'erreur.
func TokenizeMath(s string) []Segment {
	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		return []Segment{{Kind: SegmentHTML, Content: s}}
	}

	var out []Segment
	parts := strings.Split(s, "$$")
	balanced := len(parts)%2 == 1
	for i, part := range parts {
		if i%2 == 1 {
			if balanced || i < len(parts)-1 {
				out = append(out, Segment{Kind: SegmentDisplay, Content: part})
			} else {
				// $$ orphelin en fin de texte, rendu littéral
				out = append(out, Segment{Kind: SegmentText, Content: "$$" + part})
			}
			continue
		}
		out = tokenizeInline(part, out)
	}
	return out
}

func tokenizeInline(s string, out []Segment) []Segment {
	parts := strings.Split(s, "$")
	balanced := len(parts)%2 == 1
	for i, part := range parts {
		if i%2 == 1 {
			if balanced || i < len(parts)-1 {
				out = append(out, Segment{Kind: SegmentInline, Content: part})
			} else {
				// $ orphelin, rendu littéral
				out = append(out, Segment{Kind: SegmentText, Content: "$" + part})
			}
			continue
		}
		if part != "" {
			out = append(out, Segment{Kind: SegmentText, Content: part})
		}
	}
	return out
}
