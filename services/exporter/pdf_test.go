package exporter

import (
	"testing"

	"github.com/Thedarik/Quations/services/assembler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	questions := []assembler.TestQuestion{
		{
			ID:         1,
			GroupTitle: "Math",
			Text:       "2+2?",
			Answers: []assembler.Answer{
				{Text: "4", IsCorrect: true},
				{Text: "3"},
				{Text: "5"},
				{Text: "22"},
			},
		},
		{
			ID:         2,
			GroupTitle: "Math",
			Text:       "3*3?",
			Answers: []assembler.Answer{
				{Text: "6"},
				{Text: "9", IsCorrect: true},
				{Text: "33"},
				{Text: "12"},
			},
		},
	}

	pdfBytes, err := Render("Math", questions)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestRenderToleratesMissingImage(t *testing.T) {
	questions := []assembler.TestQuestion{
		{
			ID:    1,
			Text:  "What is shown in the picture?",
			Image: "uploads/does-not-exist.png",
			Answers: []assembler.Answer{
				{Text: "A cat", IsCorrect: true},
				{Text: "A dog"},
				{Text: "A bird"},
				{Text: "A fish"},
			},
		},
	}

	pdfBytes, err := Render("Biology", questions)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestRenderEmptyList(t *testing.T) {
	pdfBytes, err := Render("Empty", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
