package prompt

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// EstimateTokens estimates the token count of text for a model.
// Models without a known tokenizer fall back to the cl100k_base encoding,
// which is close enough for budget checks against hosted models.
func EstimateTokens(model, text string) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if enc, err = tiktoken.GetEncoding(fallbackEncoding); err != nil {
			return 0, fmt.Errorf("load tokenizer: %w", err)
		}
	}
	return len(enc.Encode(text, nil, nil)), nil
}
