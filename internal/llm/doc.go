// Package llm provides language model clients and the paper relevance classifier.
// It supports the OpenAI chat completions API and the Anthropic messages API.
package llm
