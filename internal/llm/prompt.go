package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/papertrail/internal/model"
)

// relevanceSystemPrompt describes the rubric for the prompt engineering review.
const relevanceSystemPrompt = `You are a lab assistant, helping with a systematic review on prompt engineering. You've been asked to rate the relevance of a paper to the topic of prompt engineering.
To be clear, this review will strictly cover hard prefix prompts. For clarification: Hard prompts have tokens that correspond directly to words in the vocab. For example, you could make up a new token by adding two together. This would no longer correspond to any word in the vocabulary, and would be a soft prompt.
Prefix prompts are prompts used for most modern transformers, where the model predicts the words after this prompt. In earlier models, such as BERT, models could predict words (e.g. <MASK>) in the middle of the prompt. Your job is to be able to tell whether a paper is related to (or simply contains) hard prefix prompting or prompt engineering. Please note that a paper might not spell out that it is using "hard prefix" prompting and so it might just say prompting. In this case, you should still rate it as relevant to the topic of prompt engineering.
Please also note that a paper that focuses on training a model as opposed to post-training prompting techniques is considered irrelevant.
Provide a response in JSON format with two fields: 'reasoning' (a single sentence that justifies your reasoning) and 'rating' (a string that is one of the following categories: 'highly relevant', 'somewhat relevant', 'neutrally relevant', 'somewhat irrelevant', 'highly irrelevant') indicating relevance to the topic of prompt engineering.`

// buildRelevancePrompt creates the user message for one paper.
func buildRelevancePrompt(title, abstract string) string {
	return fmt.Sprintf("Title: '%s', Abstract: '%s'. Rate its relevance to the topic of prompt engineering as one of the following categories: "+
		"%s, and provide text from the abstract that justifies your reasoning. Respond with a JSON object with the fields 'rating' and 'reasoning'.",
		title, abstract, quotedRatings())
}

// quotedRatings lists the rating labels as 'a', 'b', ...
func quotedRatings() string {
	quoted := make([]string, 0, len(model.Ratings))
	for _, r := range model.Ratings {
		quoted = append(quoted, "'"+string(r)+"'")
	}
	return strings.Join(quoted, ", ")
}
