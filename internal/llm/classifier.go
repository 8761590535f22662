package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/papertrail/internal/model"
)

// Error record messages.
const (
	errInvalidJSON = "Invalid JSON response"
	errIncomplete  = "Missing rating or reasoning"
	errRequest     = "Request failed"
)

// Classifier rates paper relevance with one model call per paper.
type Classifier struct {
	client Client
	logger *slog.Logger
	model  string
}

// NewClassifier creates a new LLM-based classifier. modelName is recorded on
// every classification and should match the model the client sends.
func NewClassifier(client Client, modelName string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client: client,
		logger: logger,
		model:  modelName,
	}
}

// Model returns the model identifier recorded on classifications.
func (c *Classifier) Model() string {
	return c.model
}

// Classify rates a single paper. It never fails: request errors and
// malformed replies come back as error records.
func (c *Classifier) Classify(ctx context.Context, title, abstract string) model.Classification {
	result := model.Classification{Model: c.model}

	content, err := c.client.Complete(ctx, relevanceSystemPrompt, buildRelevancePrompt(title, abstract))
	if err != nil {
		c.logger.Error("relevance request failed",
			"title", title,
			"error", err)
		result.Error = errRequest
		result.Response = err.Error()
		return result
	}

	rating, reasoning, err := parseRelevance(content)
	if err != nil {
		c.logger.Warn("could not parse relevance reply",
			"title", title,
			"error", err)
		result.Error = errInvalidJSON
		if errors.Is(err, errMissingFields) {
			result.Error = errIncomplete
		}
		result.Response = content
		return result
	}

	if !rating.Valid() {
		c.logger.Warn("model returned an unknown rating",
			"title", title,
			"rating", rating)
	}

	result.Rating = rating
	result.Reasoning = reasoning

	c.logger.Debug("paper classified",
		"title", title,
		"rating", rating)

	return result
}
