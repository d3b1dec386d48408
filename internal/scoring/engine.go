// Package scoring turns a completed answer set into a diagnosis report.
// Compute is pure over its inputs plus a wall-clock date stamp.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
)

// Answer records the option a respondent selected for a question.
// Label identifies the option within the question; Value is its score
// weight at selection time.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Label      string `json:"label"`
	Value      int    `json:"value"`
}

// IncompleteAnswersError reports questions that lack an answer when
// final scoring is requested. The wizard prevents this; reaching it is
// a contract violation, fatal to that compute attempt.
type IncompleteAnswersError struct {
	Missing []int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("scoring: %d unanswered questions: %v", len(e.Missing), e.Missing)
}

const (
	opportunityCap = 2
	improvementCap = 3
)

// Fallback findings keep the report sections non-empty.
const (
	fallbackStrength = "El interés de la empresa en la internacionalización es un punto de partida valioso."
	fallbackWeakness = "No se identificaron debilidades críticas en la evaluación."
)

// Compute scores a complete answer set against the catalog and returns
// the diagnosis. The answer for every catalog question must be present
// and the contact block must validate.
func Compute(answers map[int]Answer, cat *catalog.Catalog, info contact.Info, now time.Time) (*diagnosis.Result, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	var missing []int
	for _, q := range cat.All() {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &IncompleteAnswersError{Missing: missing}
	}

	sum := 0
	byKind := map[catalog.Kind][]string{}
	for _, q := range cat.All() {
		ans := answers[q.ID]
		opt, ok := q.Option(ans.Label)
		if !ok {
			return nil, fmt.Errorf("scoring: question %d has no option %q", q.ID, ans.Label)
		}
		sum += opt.Score
		if opt.Message != "" {
			byKind[opt.Kind] = append(byKind[opt.Kind], opt.Message)
		}
	}

	score := normalize(sum, cat.Len()*cat.MaxWeight())
	category := diagnosis.CategoryFor(score)

	strengths := append([]string{}, byKind[catalog.KindStrength]...)
	strengths = append(strengths, capAt(byKind[catalog.KindOpportunity], opportunityCap)...)
	if len(strengths) == 0 {
		strengths = []string{fallbackStrength}
	}

	weaknesses := append([]string{}, byKind[catalog.KindWeakness]...)
	weaknesses = append(weaknesses, capAt(byKind[catalog.KindImprovement], improvementCap)...)
	if len(weaknesses) == 0 {
		weaknesses = []string{fallbackWeakness}
	}

	return &diagnosis.Result{
		Score:           score,
		Category:        category,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: Recommend(category, weaknesses),
		Company:         info.Company,
		Name:            info.Name,
		City:            info.City,
		Date:            diagnosis.FormatDate(now),
	}, nil
}

func normalize(sum, maxSum int) int {
	if maxSum <= 0 {
		return 0
	}
	score := int(math.Round(100 * float64(sum) / float64(maxSum)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func capAt(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// contains reports whether any finding mentions the keyword,
// case-insensitively.
func contains(findings []string, keyword string) bool {
	for _, f := range findings {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}
