package service

import (
	"math"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"numiviz_backend/pkg/logger"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const lineTolerance = 1e-9

// forme acceptée: y = mx + b (m et b optionnels, signes libres)
var lineRe = regexp.MustCompile(`^y=([+-]?(?:\d+\.?\d*)?x)?([+-]?\d+\.?\d*)?$`)

// Linear2x2Service petit solveur graphique d'intersection de deux
// droites y=mx+b, avec historique par utilisateur
type Linear2x2Service struct {
	HistoryRepo *repository.HistoryRepository
}

func NewLinear2x2Service(historyRepo *repository.HistoryRepository) *Linear2x2Service {
	return &Linear2x2Service{HistoryRepo: historyRepo}
}

// LineCoefficients pente et ordonnée à l'origine d'une droite y=mx+b
type LineCoefficients struct {
	M float64 `json:"m"`
	B float64 `json:"b"`
}

// ParseLine extrait (m, b) d'une équation "y = mx + b". Retourne false
// si la forme n'est pas reconnue.
func ParseLine(input string) (LineCoefficients, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "*", "")

	matches := lineRe.FindStringSubmatch(s)
	if matches == nil {
		return LineCoefficients{}, false
	}
	mx, b := matches[1], matches[2]
	if mx == "" && b == "" {
		// "y=" tout seul
		return LineCoefficients{}, false
	}
	// "y=x5" n'est pas une droite: b doit être signé après un terme en x
	if mx != "" && b != "" && b[0] != '+' && b[0] != '-' {
		return LineCoefficients{}, false
	}

	var c LineCoefficients
	if mx != "" {
		coef := strings.TrimSuffix(mx, "x")
		switch coef {
		case "", "+":
			c.M = 1
		case "-":
			c.M = -1
		default:
			m, err := strconv.ParseFloat(coef, 64)
			if err != nil {
				return LineCoefficients{}, false
			}
			c.M = m
		}
	}
	if b != "" {
		v, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return LineCoefficients{}, false
		}
		c.B = v
	}
	return c, true
}

// Linear2x2Result classification de l'intersection de deux droites
type Linear2x2Result struct {
	Type  string            `json:"type"` // unique | none | infinite | invalid
	X     *float64          `json:"x,omitempty"`
	Y     *float64          `json:"y,omitempty"`
	Line1 *LineCoefficients `json:"line1,omitempty"`
	Line2 *LineCoefficients `json:"line2,omitempty"`
}

// Solve classe le système formé par deux droites. L'historique est
// enregistré au mieux: un échec d'écriture ne bloque pas la réponse.
func (s *Linear2x2Service) Solve(userID uint, line1, line2 string) *Linear2x2Result {
	result := solveLines(line1, line2)

	if s.HistoryRepo != nil {
		h := &model.LinearSystemHistory{
			IDUtilisateur: userID,
			Line1:         line1,
			Line2:         line2,
			SolutionType:  result.Type,
			SolutionX:     result.X,
			SolutionY:     result.Y,
		}
		if err := s.HistoryRepo.Create(h); err != nil {
			logger.Log.Warn("historique 2x2 non enregistré", zap.Error(err))
		}
	}
	return result
}

func solveLines(line1, line2 string) *Linear2x2Result {
	c1, ok1 := ParseLine(line1)
	c2, ok2 := ParseLine(line2)
	if !ok1 || !ok2 {
		return &Linear2x2Result{Type: "invalid"}
	}

	res := &Linear2x2Result{Line1: &c1, Line2: &c2}
	dm := c1.M - c2.M
	db := c1.B - c2.B

	switch {
	case math.Abs(dm) < lineTolerance && math.Abs(db) < lineTolerance:
		res.Type = "infinite"
	case math.Abs(dm) < lineTolerance:
		res.Type = "none"
	default:
		x := -db / dm
		y := c1.M*x + c1.B
		res.Type = "unique"
		res.X = &x
		res.Y = &y
	}
	return res
}

func (s *Linear2x2Service) History(userID uint) ([]model.LinearSystemHistory, error) {
	return s.HistoryRepo.FindByUser(userID)
}

func (s *Linear2x2Service) ClearHistory(userID uint) error {
	return s.HistoryRepo.DeleteByUser(userID)
}
