package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	jsonFence  = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	plainFence = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// ExtractJSON finds a JSON document in model output. It accepts, in order:
// the whole text, a ```json fenced block, any ``` fenced block, and the
// span between the first '{' and the last '}'.
func ExtractJSON(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)

	candidates := []string{text}
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := plainFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && json.Valid([]byte(c)) {
			return json.RawMessage(c), nil
		}
	}

	return nil, &ErrInvalidResponse{
		Content: json.RawMessage(text),
		Err:     errors.New("no JSON object found in response"),
	}
}
