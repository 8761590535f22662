package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/model"
)

var errMissingFields = fmt.Errorf("%w: missing rating or reasoning", common.ErrInvalidResponse)

// relevanceReply is the JSON object the model is asked to return.
type relevanceReply struct {
	Rating    *string `json:"rating"`
	Reasoning *string `json:"reasoning"`
}

// parseRelevance decodes a model reply into a rating and its justification.
// Both fields are required. The rating is normalized to lower case but is
// not checked against the five known labels; unknown labels sort last.
func parseRelevance(content string) (model.Rating, string, error) {
	var reply relevanceReply
	if err := json.Unmarshal([]byte(cleanMarkdownWrapper(content)), &reply); err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrInvalidResponse, err)
	}

	if reply.Rating == nil || reply.Reasoning == nil {
		return "", "", errMissingFields
	}

	rating := model.Rating(strings.ToLower(strings.TrimSpace(*reply.Rating)))
	return rating, strings.TrimSpace(*reply.Reasoning), nil
}

// cleanMarkdownWrapper strips a ```json fence some models put around JSON.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		// drop the language tag line
		content = content[idx+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}
