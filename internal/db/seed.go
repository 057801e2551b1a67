package db

import (
	"encoding/json"
	"fmt"
)

// parseTemplateBanks splits the seed file, a JSON object mapping interview
// type to an array of question strings, into per-type JSON arrays ready
// for the question_templates table.
func parseTemplateBanks(raw []byte) (map[string]string, error) {
	var banks map[string][]string
	if err := json.Unmarshal(raw, &banks); err != nil {
		return nil, fmt.Errorf("parse template banks: %w", err)
	}

	out := make(map[string]string, len(banks))
	for typ, questions := range banks {
		b, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal bank %s: %w", typ, err)
		}
		out[typ] = string(b)
	}

	return out, nil
}
