package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractJSONArray parses a classification reply that is expected, but not
// guaranteed, to contain a JSON array. The reply may be:
// - a bare JSON array
// - an array wrapped in markdown code fences (```json ... ```)
// - an array buried in surrounding prose
// - slightly malformed JSON (trailing commas, control characters)
// It never panics; any input that yields no array is reported as an error.
func ExtractJSONArray(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Direct parse first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	// Strip markdown code fences
	if stripped := stripCodeFences(input); stripped != "" {
		if err := json.Unmarshal([]byte(stripped), target); err == nil {
			return nil
		}
		input = stripped
	}

	// Find a balanced array in the surrounding text
	if extracted := extractBalancedArray(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// Last resort: repair common model mistakes inside the extracted array
		if err := json.Unmarshal([]byte(repairJSON(extracted)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no JSON array found in input: %s", truncateString(input, 120))
}

// stripCodeFences removes markdown fencing around a reply.
// Supports ```json ... ```, ``` ... ``` and unterminated fences.
func stripCodeFences(input string) string {
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	if matches := re.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// Unterminated fence: drop the opening marker and keep the rest
	if idx := strings.Index(input, "```"); idx >= 0 {
		rest := input[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		return strings.TrimSpace(strings.ReplaceAll(rest, "```", ""))
	}

	return ""
}

// extractBalancedArray returns the first bracket-balanced array in the input,
// honoring string literals and escapes.
func extractBalancedArray(input string) string {
	start := strings.Index(input, "[")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false

	for i := start; i < len(input); i++ {
		ch := input[i]

		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// repairJSON fixes the malformations models produce most often: trailing
// commas before a closing brace/bracket and embedded control characters.
func repairJSON(input string) string {
	s := regexp.MustCompile(`,\s*([}\]])`).ReplaceAllString(input, "$1")
	s = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`).ReplaceAllString(s, "")
	return s
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
