package services

import (
	"encoding/json"
	"strings"
	"unicode"

	"converter-backend/internal/models"
)

// NormalizeAnswer turns raw model output into the strict two-field record.
// When the model broke the contract the whole cleaned text becomes the
// explanation, so the caller never ends up with "no answer" after the model
// said something.
func NormalizeAnswer(raw string) models.ConversionAnswer {
	cleaned := stripCodeFences(raw)

	var parsed struct {
		Result      *string `json:"result"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil || (parsed.Result == nil && parsed.Explanation == nil) {
		return models.ConversionAnswer{Result: "", Explanation: cleaned}
	}

	answer := models.ConversionAnswer{}
	if parsed.Result != nil {
		answer.Result = *parsed.Result
	}
	if parsed.Explanation != nil {
		answer.Explanation = *parsed.Explanation
	}
	return answer
}

// stripCodeFences removes a surrounding markdown fence, tolerating ``` and
// ```` styles and an optional language tag on the opening fence.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimLeft(s, "`")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		tag := strings.TrimSpace(s[:nl])
		if tag == "" || isLanguageTag(tag) {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "`")
	return strings.TrimSpace(s)
}

func isLanguageTag(s string) bool {
	if len(s) == 0 || len(s) > 16 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
