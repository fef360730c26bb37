package question

import (
	"testing"

	"tryout-admin-service/internal/domain/question"
	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func opts(correct ...bool) []question.AnswerOptionInput {
	labels := []string{"A", "B", "C", "D", "E"}
	out := make([]question.AnswerOptionInput, len(correct))
	for i, c := range correct {
		out[i] = question.AnswerOptionInput{Label: labels[i], Content: "option", IsCorrect: c}
	}
	return out
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		qType   question.QuestionType
		options []question.AnswerOptionInput
		wantErr bool
	}{
		{"single choice with one correct", question.TypeSingleChoice, opts(true, false, false), false},
		{"single choice with two correct", question.TypeSingleChoice, opts(true, true, false), true},
		{"single choice without correct", question.TypeSingleChoice, opts(false, false), true},
		{"single choice with one option", question.TypeSingleChoice, opts(true), true},
		{"multiple choice with several correct", question.TypeMultipleChoice, opts(true, true, false), false},
		{"multiple choice without correct", question.TypeMultipleChoice, opts(false, false, false), true},
		{"essay without options", question.TypeEssay, nil, false},
		{"essay with options", question.TypeEssay, opts(true, false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.qType, tt.options)
			if tt.wantErr {
				assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOptions_DuplicateLabels(t *testing.T) {
	options := []question.AnswerOptionInput{
		{Label: "A", Content: "first", IsCorrect: true},
		{Label: "A", Content: "second", IsCorrect: false},
	}

	err := validateOptions(question.TypeSingleChoice, options)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
