package llm

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/akyairhashvil/studybuddy/internal/util"
)

// TokenCounter estimates prompt sizes with the GPT-4 encoding. The codec is
// loaded on first use; if it cannot be loaded, counts fall back to roughly
// four bytes per token.
type TokenCounter struct {
	once  sync.Once
	codec tokenizer.Codec
}

func NewTokenCounter() *TokenCounter {
	return &TokenCounter{}
}

func (tc *TokenCounter) load() {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		util.LogError("load tokenizer", err)
		return
	}
	tc.codec = codec
}

// Count returns the number of tokens in text.
func (tc *TokenCounter) Count(text string) int {
	tc.once.Do(tc.load)
	if tc.codec == nil {
		return len(text) / 4
	}
	n, err := tc.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return n
}

// CountMessages sums the content tokens of messages.
func (tc *TokenCounter) CountMessages(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += tc.Count(m.Content)
	}
	return total
}
