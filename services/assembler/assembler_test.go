package assembler

import (
	"sort"
	"testing"

	"github.com/Thedarik/Quations/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureGroups() []models.QuestionGroup {
	return []models.QuestionGroup{
		{
			UserID:  1,
			GroupNo: 1,
			Title:   "Math",
			Questions: []models.Question{
				{
					QuestionNo: 1,
					Text:       "2+2?",
					Answers: []models.AnswerOption{
						{Text: "4", IsCorrect: true, OrderIndex: 0},
						{Text: "3", OrderIndex: 1},
						{Text: "5", OrderIndex: 2},
						{Text: "22", OrderIndex: 3},
					},
				},
				{
					QuestionNo: 2,
					Text:       "3*3?",
					Answers: []models.AnswerOption{
						{Text: "6", OrderIndex: 0},
						{Text: "9", IsCorrect: true, OrderIndex: 1},
						{Text: "33", OrderIndex: 2},
						{Text: "12", OrderIndex: 3},
					},
				},
				{
					QuestionNo: 3,
					Text:       "10/2?",
					Answers: []models.AnswerOption{
						{Text: "2", OrderIndex: 0},
						{Text: "8", OrderIndex: 1},
						{Text: "20", OrderIndex: 2},
						{Text: "5", IsCorrect: true, OrderIndex: 3},
					},
				},
			},
		},
		{
			UserID:  1,
			GroupNo: 2,
			Title:   "History",
		},
	}
}

func questionTexts(questions []TestQuestion) []string {
	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.Text)
	}
	return texts
}

func TestAssembleShuffleKeepsContent(t *testing.T) {
	groups := fixtureGroups()

	set := Assemble(groups, "Math", true, true)
	require.Equal(t, 3, set.TotalQuestions)
	require.Len(t, set.Questions, 3)

	got := questionTexts(set.Questions)
	want := []string{"2+2?", "3*3?", "10/2?"}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestAssembleCorrectAnswerSurvivesShuffle(t *testing.T) {
	groups := fixtureGroups()
	correctByText := map[string]string{"2+2?": "4", "3*3?": "9", "10/2?": "5"}

	// Shuffling is random; exercise it enough times to hit many permutations
	for i := 0; i < 50; i++ {
		set := Assemble(groups, "Math", true, true)
		for _, q := range set.Questions {
			require.Len(t, q.Answers, 4)

			correct := make([]string, 0, 1)
			for _, a := range q.Answers {
				if a.IsCorrect {
					correct = append(correct, a.Text)
				}
			}
			require.Len(t, correct, 1, "question %q must keep exactly one correct answer", q.Text)
			assert.Equal(t, correctByText[q.Text], correct[0])
		}
	}
}

func TestAssembleDoesNotMutateStoredGroups(t *testing.T) {
	groups := fixtureGroups()

	for i := 0; i < 20; i++ {
		Assemble(groups, "Math", true, true)
	}

	original := fixtureGroups()
	require.Equal(t, len(original[0].Questions), len(groups[0].Questions))
	for qi, q := range groups[0].Questions {
		assert.Equal(t, original[0].Questions[qi].Text, q.Text)
		for ai, a := range q.Answers {
			assert.Equal(t, original[0].Questions[qi].Answers[ai].Text, a.Text)
			assert.Equal(t, original[0].Questions[qi].Answers[ai].IsCorrect, a.IsCorrect)
		}
	}
}

func TestAssembleIdentityMode(t *testing.T) {
	groups := fixtureGroups()

	set := Assemble(groups, "Math", false, false)
	require.Equal(t, 3, set.TotalQuestions)

	assert.Equal(t, []string{"2+2?", "3*3?", "10/2?"}, questionTexts(set.Questions))
	assert.Equal(t, "4", set.Questions[0].Answers[0].Text)
	assert.Equal(t, "22", set.Questions[0].Answers[3].Text)
	assert.Equal(t, "9", set.Questions[1].Answers[1].Text)
}

func TestAssembleUnknownGroupIsSoft(t *testing.T) {
	groups := fixtureGroups()

	set := Assemble(groups, "Geography", true, true)
	assert.Equal(t, 0, set.TotalQuestions)
	assert.Empty(t, set.Questions)
	assert.ElementsMatch(t, []string{"Math", "History"}, set.AvailableGroups)
	assert.Contains(t, set.Message, "Geography")
}

func TestAssembleEmptyGroup(t *testing.T) {
	groups := fixtureGroups()

	set := Assemble(groups, "History", true, true)
	assert.Equal(t, 0, set.TotalQuestions)
	assert.Equal(t, "History", set.GroupTitle)
	assert.Empty(t, set.Questions)
	assert.Empty(t, set.AvailableGroups)
}

func TestAssembleNoRecords(t *testing.T) {
	set := Assemble(nil, "Math", true, true)
	assert.Equal(t, 0, set.TotalQuestions)
	assert.NotNil(t, set.Questions)
	assert.Empty(t, set.Questions)
	assert.Empty(t, set.GroupTitle)
}

func TestAssembleEchoesShuffleFlags(t *testing.T) {
	groups := fixtureGroups()

	set := Assemble(groups, "Math", true, false)
	assert.True(t, set.ShuffleQuestions)
	assert.False(t, set.ShuffleAnswers)

	// Answer order untouched when only questions are shuffled
	for _, q := range set.Questions {
		if q.Text == "2+2?" {
			assert.Equal(t, "4", q.Answers[0].Text)
		}
	}
}
