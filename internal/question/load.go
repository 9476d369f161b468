package question

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type rawRecord struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// LoadFile reads a question file in the upstream dump format: a JSON object
// mapping record ids to {"q": question, "a": answer}. Records with an empty
// question or answer are skipped. Limit bounds the number of returned pairs;
// limit <= 0 means no bound. Order follows the sorted record ids so repeated
// loads are deterministic.
func LoadFile(path string, limit int) ([]QuestionAnswer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var raw map[string]rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question file: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]QuestionAnswer, 0, len(raw))
	for _, id := range ids {
		rec := raw[id]
		if rec.Q == "" || rec.A == "" {
			continue
		}
		out = append(out, QuestionAnswer{Question: rec.Q, Answer: rec.A})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
