package feed

import (
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

func TestParse(t *testing.T) {
	type testcase struct {
		name     string
		input    string
		headings []string
		series   [][]entry.Entry
		wantErr  bool
	}
	for _, tc := range []testcase{
		{
			name: "two series",
			input: strings.Join([]string{
				"x, alpha, beta",
				"0, 1.5, 2",
				"1, 2.5, -1",
			}, "\n"),
			headings: []string{"alpha", "beta"},
			series: [][]entry.Entry{
				{entry.Pt(0, 1.5), entry.Pt(1, 2.5)},
				{entry.Pt(0, 2), entry.Pt(1, -1)},
			},
		},
		{
			name: "null cells leave holes",
			input: strings.Join([]string{
				"x, alpha, beta",
				"0, 1,",
				"2, , 3",
			}, "\n"),
			headings: []string{"alpha", "beta"},
			series: [][]entry.Entry{
				{entry.Pt(0, 1)},
				{entry.Pt(2, 3)},
			},
		},
		{
			name:    "missing series columns",
			input:   "x",
			wantErr: true,
		},
		{
			name: "descending x rejected",
			input: strings.Join([]string{
				"x, alpha",
				"2, 1",
				"0, 1",
			}, "\n"),
			wantErr: true,
		},
		{
			name: "garbage value rejected",
			input: strings.Join([]string{
				"x, alpha",
				"0, banana",
			}, "\n"),
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			snapshot, err := Parse(strings.NewReader(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected a parse error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(snapshot.Headings) != len(tc.headings) {
				t.Fatalf("expected %d headings, got %d", len(tc.headings), len(snapshot.Headings))
			}
			for i, h := range tc.headings {
				if snapshot.Headings[i] != h {
					t.Errorf("heading %d should be %q, got %q", i, h, snapshot.Headings[i])
				}
			}
			if len(snapshot.Collections) != len(tc.series) {
				t.Fatalf("expected %d series, got %d", len(tc.series), len(snapshot.Collections))
			}
			for si, want := range tc.series {
				got := snapshot.Collections[si]
				if len(got) != len(want) {
					t.Fatalf("series %d should hold %d entries, got %d", si, len(want), len(got))
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("series %d entry %d should be %+v, got %+v", si, i, want[i], got[i])
					}
				}
			}
		})
	}
}
