package utils

import (
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Bare JSON array",
			input:   `[{"platform": "linkedin", "content": "need a dev"}]`,
			wantLen: 1,
			wantErr: false,
		},
		{
			name: "Array in markdown code block",
			input: "```json\n" +
				`[{"platform": "x"}, {"platform": "reddit"}]` + "\n```",
			wantLen: 2,
			wantErr: false,
		},
		{
			name:    "Array in code block without language tag",
			input:   "```\n[{\"platform\": \"x\"}]\n```",
			wantLen: 1,
			wantErr: false,
		},
		{
			name:    "Array with surrounding prose",
			input:   `Here are the leads I found: [{"platform": "linkedin"}] Let me know if you need more.`,
			wantLen: 1,
			wantErr: false,
		},
		{
			name:    "Array with trailing comma",
			input:   `[{"platform": "x"},]`,
			wantLen: 1,
			wantErr: false,
		},
		{
			name:    "Empty array",
			input:   `[]`,
			wantLen: 0,
			wantErr: false,
		},
		{
			name:    "Brackets inside string literals",
			input:   `[{"content": "need [urgent] help with \"quotes\" and ] brackets"}]`,
			wantLen: 1,
			wantErr: false,
		},
		{
			name:    "Refusal text",
			input:   "Sorry, I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Object instead of array",
			input:   `{"platform": "x"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []map[string]interface{}
			err := ExtractJSONArray(tt.input, &got)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractJSONArray() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.wantLen {
				t.Errorf("ExtractJSONArray() got %d elements, want %d", len(got), tt.wantLen)
			}
		})
	}
}

// Fenced and unfenced replies must parse identically.
func TestExtractJSONArray_FenceEquivalence(t *testing.T) {
	raw := `[{"platform": "linkedin", "intent_score": 95}, {"platform": "x", "intent_score": 70}]`
	fenced := "```json\n" + raw + "\n```"

	var fromRaw, fromFenced []map[string]interface{}
	if err := ExtractJSONArray(raw, &fromRaw); err != nil {
		t.Fatalf("unfenced parse failed: %v", err)
	}
	if err := ExtractJSONArray(fenced, &fromFenced); err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}

	if len(fromRaw) != len(fromFenced) {
		t.Fatalf("fenced and unfenced parses differ: %d vs %d elements", len(fromRaw), len(fromFenced))
	}
	for i := range fromRaw {
		if fromRaw[i]["platform"] != fromFenced[i]["platform"] {
			t.Errorf("element %d differs: %v vs %v", i, fromRaw[i], fromFenced[i])
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json tag",
			input: "```json\n[1, 2]\n```",
			want:  "[1, 2]",
		},
		{
			name:  "no tag",
			input: "```\n[1]\n```",
			want:  "[1]",
		},
		{
			name:  "unterminated fence",
			input: "```json\n[1, 2]",
			want:  "[1, 2]",
		},
		{
			name:  "no fences",
			input: "[1, 2]",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("stripCodeFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
