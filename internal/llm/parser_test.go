package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/model"
)

func TestParseRelevance(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantRating    model.Rating
		wantReasoning string
		wantErr       bool
	}{
		{
			name:          "plain json",
			content:       `{"reasoning": "Uses few-shot prompts.", "rating": "highly relevant"}`,
			wantRating:    model.HighlyRelevant,
			wantReasoning: "Uses few-shot prompts.",
		},
		{
			name:          "fenced json with odd casing",
			content:       "```json\n{\"rating\": \" Somewhat Irrelevant \", \"reasoning\": \"Mostly pretraining.\"}\n```",
			wantRating:    model.SomewhatIrrelevant,
			wantReasoning: "Mostly pretraining.",
		},
		{
			name:          "unknown label is kept",
			content:       `{"rating": "very relevant", "reasoning": "x"}`,
			wantRating:    "very relevant",
			wantReasoning: "x",
		},
		{
			name:    "not json",
			content: "I think this paper is highly relevant.",
			wantErr: true,
		},
		{
			name:    "missing reasoning",
			content: `{"rating": "highly relevant"}`,
			wantErr: true,
		},
		{
			name:    "null",
			content: `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, reasoning, err := parseRelevance(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrInvalidResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRating, rating)
			assert.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestCleanMarkdownWrapper(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("  {\"a\":1}\n"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```\n{\"a\":1}```"))
}
