package service

import (
	"errors"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/lib/pq"
)

var (
	ErrNoQuizAnswers = errors.New("no quiz answers given")
)

// quizStyles is the precedence order used to break ties: earlier wins.
var quizStyles = []string{
	"Minimalist",
	"Modern",
	"Scandinavian",
	"Industrial",
	"Bohemian",
	"Art Deco",
}

var styleDescriptions = map[string]string{
	"Minimalist":   "Less is more. You value clean lines, open space and a calm, clutter-free home.",
	"Modern":       "Sleek and current. You love bold contrast, glass and statement furniture.",
	"Scandinavian": "Light woods, soft textiles and functional warmth define your space.",
	"Industrial":   "Exposed brick, raw metal and honest materials speak to you.",
	"Bohemian":     "Layered patterns, plants and collected treasures make your home yours.",
	"Art Deco":     "Glamour and geometry. You gravitate toward rich colors and gold accents.",
}

// QuizVerdict is the scored outcome of a style quiz run.
type QuizVerdict struct {
	Style       string         `json:"style"`
	Description string         `json:"description"`
	Tally       map[string]int `json:"tally"`
}

type QuizService interface {
	Score(sessionID string, answers []string) (*QuizVerdict, error)
	LatestResult(sessionID string) (*model.QuizResult, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

// Score tallies the chosen styles and persists the winning one. Answers
// that do not name a known style are ignored.
func (s *quizService) Score(sessionID string, answers []string) (*QuizVerdict, error) {
	if len(answers) == 0 {
		return nil, ErrNoQuizAnswers
	}

	tally := make(map[string]int)
	for _, answer := range answers {
		if _, ok := styleDescriptions[answer]; ok {
			tally[answer]++
		}
	}
	if len(tally) == 0 {
		return nil, ErrNoQuizAnswers
	}

	winner := ""
	best := 0
	for _, style := range quizStyles {
		if tally[style] > best {
			winner = style
			best = tally[style]
		}
	}

	result := &model.QuizResult{
		SessionID: sessionID,
		Style:     winner,
		Answers:   pq.StringArray(answers),
	}
	if err := s.quizRepo.Create(result); err != nil {
		logger.Error("Failed to persist quiz result", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Info("Style quiz scored", map[string]interface{}{
		"session_id": sessionID,
		"style":      winner,
	})
	return &QuizVerdict{
		Style:       winner,
		Description: styleDescriptions[winner],
		Tally:       tally,
	}, nil
}

func (s *quizService) LatestResult(sessionID string) (*model.QuizResult, error) {
	return s.quizRepo.FindLatestBySession(sessionID)
}
