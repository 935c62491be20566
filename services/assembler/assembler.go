// Package assembler turns a stored question group into a randomized test set
// for delivery. It works on an already loaded snapshot and never touches the
// database: callers load the account's groups, Assemble copies and reorders.
package assembler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Thedarik/Quations/models"
)

// Answer is a delivery-facing copy of a stored answer option. IsCorrect
// travels with the option through any reordering; it is never recomputed.
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// TestQuestion is an independent copy of a stored question. Mutating it
// (including shuffling its answers) never reaches persisted state.
type TestQuestion struct {
	ID         uint      `json:"id"`
	GroupTitle string    `json:"group_title"`
	Text       string    `json:"text"`
	Answers    []Answer  `json:"answers"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TestSet is the assembled result. The same shape is returned for every
// outcome: a missing group reports the account's available group titles and
// an empty question list instead of failing, so clients recover without a
// separate error branch.
type TestSet struct {
	Message          string         `json:"message"`
	GroupTitle       string         `json:"group_title,omitempty"`
	TotalQuestions   int            `json:"total_questions"`
	ShuffleQuestions bool           `json:"shuffle_questions"`
	ShuffleAnswers   bool           `json:"shuffle_answers"`
	AvailableGroups  []string       `json:"available_groups,omitempty"`
	Questions        []TestQuestion `json:"questions"`
}

// Assemble locates groupTitle among the account's groups (exact, case
// sensitive match) and returns a shuffled snapshot of its questions.
//
// With both flags false the stored order is returned unchanged, which is the
// authoring preview mode. Question order and per-question answer order are
// shuffled independently; every permutation is equally likely. Randomness
// comes from the process-seeded math/rand source, so repeated calls differ.
func Assemble(groups []models.QuestionGroup, groupTitle string, shuffleQuestions, shuffleAnswers bool) TestSet {
	if len(groups) == 0 {
		return TestSet{
			Message:          "No question records found for this account",
			ShuffleQuestions: shuffleQuestions,
			ShuffleAnswers:   shuffleAnswers,
			Questions:        []TestQuestion{},
		}
	}

	var target *models.QuestionGroup
	for i := range groups {
		if groups[i].Title == groupTitle {
			target = &groups[i]
			break
		}
	}

	if target == nil {
		available := make([]string, 0, len(groups))
		for _, g := range groups {
			available = append(available, g.Title)
		}
		return TestSet{
			Message:          fmt.Sprintf("Group '%s' not found", groupTitle),
			ShuffleQuestions: shuffleQuestions,
			ShuffleAnswers:   shuffleAnswers,
			AvailableGroups:  available,
			Questions:        []TestQuestion{},
		}
	}

	questions := copyQuestions(target)

	if len(questions) == 0 {
		return TestSet{
			Message:          fmt.Sprintf("Group '%s' has no questions", groupTitle),
			GroupTitle:       groupTitle,
			ShuffleQuestions: shuffleQuestions,
			ShuffleAnswers:   shuffleAnswers,
			Questions:        questions,
		}
	}

	if shuffleQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	if shuffleAnswers {
		for qi := range questions {
			answers := questions[qi].Answers
			rand.Shuffle(len(answers), func(i, j int) {
				answers[i], answers[j] = answers[j], answers[i]
			})
		}
	}

	return TestSet{
		Message:          fmt.Sprintf("Assembled %d questions from group '%s'", len(questions), groupTitle),
		GroupTitle:       groupTitle,
		TotalQuestions:   len(questions),
		ShuffleQuestions: shuffleQuestions,
		ShuffleAnswers:   shuffleAnswers,
		Questions:        questions,
	}
}

// copyQuestions deep-copies the group's questions, answers included, in
// stored order.
func copyQuestions(group *models.QuestionGroup) []TestQuestion {
	questions := make([]TestQuestion, 0, len(group.Questions))
	for _, q := range group.Questions {
		answers := make([]Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		questions = append(questions, TestQuestion{
			ID:         q.QuestionNo,
			GroupTitle: group.Title,
			Text:       q.Text,
			Answers:    answers,
			Image:      q.ImagePath,
			CreatedAt:  q.CreatedAt,
		})
	}
	return questions
}
