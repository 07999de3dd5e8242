package types

import (
	"encoding/json"
	"testing"
)

func TestTestCase_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantInstr string
		wantCode  string
		wantErr   bool
	}{
		{
			name:      "descriptive names",
			input:     `{"instructionsMarkup":"<p>sum</p>","executableScript":"func Register(r *exercise.Registrar) {}"}`,
			wantInstr: "<p>sum</p>",
			wantCode:  "func Register(r *exercise.Registrar) {}",
		},
		{
			name:      "service short names",
			input:     `{"instr":"<h3>max</h3>","script":"x"}`,
			wantInstr: "<h3>max</h3>",
			wantCode:  "x",
		},
		{
			name:      "descriptive names win",
			input:     `{"instr":"old","instructionsMarkup":"new","script":"a","executableScript":"b"}`,
			wantInstr: "new",
			wantCode:  "b",
		},
		{
			name:     "instructions optional",
			input:    `{"script":"x"}`,
			wantCode: "x",
		},
		{
			name:    "script required",
			input:   `{"instr":"only text"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tc TestCase
			err := json.Unmarshal([]byte(tt.input), &tc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.InstructionsMarkup != tt.wantInstr {
				t.Errorf("InstructionsMarkup = %q, want %q", tc.InstructionsMarkup, tt.wantInstr)
			}
			if tc.ExecutableScript != tt.wantCode {
				t.Errorf("ExecutableScript = %q, want %q", tc.ExecutableScript, tt.wantCode)
			}
		})
	}
}

func TestSuite_Clone(t *testing.T) {
	s := Suite{{ExecutableScript: "a"}, {ExecutableScript: "b"}}
	c := s.Clone()
	c[0].ExecutableScript = "changed"

	if s[0].ExecutableScript != "a" {
		t.Error("Clone shares storage with the original")
	}
	if Suite(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
