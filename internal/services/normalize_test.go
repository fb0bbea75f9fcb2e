package services

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantResult      string
		wantExplanation string
	}{
		{
			name:            "strict json",
			raw:             `{"result":"1.64 feet","explanation":"0.5 m x 3.281 = 1.64 ft"}`,
			wantResult:      "1.64 feet",
			wantExplanation: "0.5 m x 3.281 = 1.64 ft",
		},
		{
			name:            "fenced json with language tag",
			raw:             "```json\n{\"result\":\"5 m\",\"explanation\":\"x\"}\n```",
			wantResult:      "5 m",
			wantExplanation: "x",
		},
		{
			name:            "fenced json without tag",
			raw:             "```\n{\"result\":\"5 m\",\"explanation\":\"x\"}\n```",
			wantResult:      "5 m",
			wantExplanation: "x",
		},
		{
			name:            "four backtick fence",
			raw:             "````json\n{\"result\":\"5 m\",\"explanation\":\"x\"}\n````",
			wantResult:      "5 m",
			wantExplanation: "x",
		},
		{
			name:            "not json at all",
			raw:             "not json at all",
			wantResult:      "",
			wantExplanation: "not json at all",
		},
		{
			name:            "json without contract fields",
			raw:             `{"answer":"42"}`,
			wantResult:      "",
			wantExplanation: `{"answer":"42"}`,
		},
		{
			name:            "result only",
			raw:             `{"result":"42 kg"}`,
			wantResult:      "42 kg",
			wantExplanation: "",
		},
		{
			name:            "explanation only",
			raw:             `{"explanation":"roughly half"}`,
			wantResult:      "",
			wantExplanation: "roughly half",
		},
		{
			name:            "surrounding whitespace",
			raw:             "  \n{\"result\":\"7\",\"explanation\":\"e\"}\n  ",
			wantResult:      "7",
			wantExplanation: "e",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAnswer(tc.raw)
			if got.Result != tc.wantResult {
				t.Errorf("Result = %q, want %q", got.Result, tc.wantResult)
			}
			if got.Explanation != tc.wantExplanation {
				t.Errorf("Explanation = %q, want %q", got.Explanation, tc.wantExplanation)
			}
		})
	}
}

func TestStripCodeFencesLeavesPlainTextAlone(t *testing.T) {
	if got := stripCodeFences("plain text"); got != "plain text" {
		t.Errorf("got %q", got)
	}
	// a fence tag that isn't a language name is kept as content
	if got := stripCodeFences("``` this is not a tag\nbody\n```"); got != "this is not a tag\nbody" {
		t.Errorf("got %q", got)
	}
}
