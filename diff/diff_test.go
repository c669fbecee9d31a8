package diff

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestComputeCounts(t *testing.T) {
	tests := []struct {
		name      string
		old       string
		new       string
		added     int
		removed   int
		unchanged int
		hunks     int
	}{
		{
			name:  "identical",
			old:   "a\nb", new: "a\nb",
			unchanged: 2,
		},
		{
			name: "both empty",
			old:  "", new: "",
			unchanged: 1,
		},
		{
			name: "single line replace",
			old:  "print(1)", new: "print(2)",
			added: 1, removed: 1, hunks: 1,
		},
		{
			name: "append line",
			old:  "a", new: "a\nb",
			added: 1, unchanged: 1, hunks: 1,
		},
		{
			name: "delete line",
			old:  "a\nb", new: "a",
			removed: 1, unchanged: 1, hunks: 1,
		},
		{
			name: "replace middle",
			old:  "a\nb\nc", new: "a\nX\nc",
			added: 1, removed: 1, unchanged: 2, hunks: 1,
		},
		{
			name: "rewrite everything",
			old:  "a\nb\nc", new: "x\ny",
			added: 2, removed: 3, hunks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.old, tt.new)
			if d.AddedLines != tt.added {
				t.Errorf("AddedLines = %d, want %d", d.AddedLines, tt.added)
			}
			if d.RemovedLines != tt.removed {
				t.Errorf("RemovedLines = %d, want %d", d.RemovedLines, tt.removed)
			}
			if d.UnchangedLines != tt.unchanged {
				t.Errorf("UnchangedLines = %d, want %d", d.UnchangedLines, tt.unchanged)
			}
			if len(d.Hunks) != tt.hunks {
				t.Errorf("len(Hunks) = %d, want %d", len(d.Hunks), tt.hunks)
			}
		})
	}
}

func TestComputeUnchangedCountsOutsideHunks(t *testing.T) {
	// One change in a 20-line file: context keeps 3 lines either side, but
	// the counters still cover every line of the document.
	var oldLines, newLines []string
	for i := 1; i <= 20; i++ {
		oldLines = append(oldLines, fmt.Sprintf("line %d", i))
		newLines = append(newLines, fmt.Sprintf("line %d", i))
	}
	newLines[9] = "changed"

	d := Compute(strings.Join(oldLines, "\n"), strings.Join(newLines, "\n"))
	if d.UnchangedLines != 19 {
		t.Errorf("UnchangedLines = %d, want 19", d.UnchangedLines)
	}
	if d.AddedLines != 1 || d.RemovedLines != 1 {
		t.Errorf("Added/Removed = %d/%d, want 1/1", d.AddedLines, d.RemovedLines)
	}
	if len(d.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(d.Hunks))
	}
	// 3 context + removal + addition + 3 context.
	if got := len(d.Hunks[0].Lines); got != 8 {
		t.Errorf("hunk has %d lines, want 8", got)
	}
}

func TestHunkMerging(t *testing.T) {
	base := make([]string, 20)
	for i := range base {
		base[i] = fmt.Sprintf("line %d", i+1)
	}

	change := func(nums ...int) string {
		lines := append([]string(nil), base...)
		for _, n := range nums {
			lines[n-1] = fmt.Sprintf("changed %d", n)
		}
		return strings.Join(lines, "\n")
	}
	old := strings.Join(base, "\n")

	t.Run("overlapping context windows merge", func(t *testing.T) {
		d := Compute(old, change(5, 10))
		if len(d.Hunks) != 1 {
			t.Errorf("len(Hunks) = %d, want 1", len(d.Hunks))
		}
	})

	t.Run("distant changes stay separate", func(t *testing.T) {
		d := Compute(old, change(5, 15))
		if len(d.Hunks) != 2 {
			t.Errorf("len(Hunks) = %d, want 2", len(d.Hunks))
		}
	})
}

func TestApplyRoundTrip(t *testing.T) {
	pairs := []struct{ old, new string }{
		{"", ""},
		{"", "x"},
		{"x", ""},
		{"a", "a"},
		{"a\nb\nc", "a\nX\nc"},
		{"a\nb\nc", "b\nc"},
		{"b\nc", "a\nb\nc"},
		{"a\nb\nc\nd\ne", "a\nc\nd\nZ\ne\nf"},
		{"line1\nline2", "hi\nline2"},
		{"print(1)", "print(2)"},
		{"a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn\no", "a\nB\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nN\no"},
		{"same\nsame\nsame", "same\nsame\nsame\n"},
	}

	for i, p := range pairs {
		d := Compute(p.old, p.new)
		got, err := Apply(p.old, d)
		if err != nil {
			t.Errorf("pair %d: Apply failed: %v", i, err)
			continue
		}
		if got != p.new {
			t.Errorf("pair %d: Apply = %q, want %q", i, got, p.new)
		}
	}
}

func TestApplyRejectsMismatchedHunk(t *testing.T) {
	d := Compute("a\nb\nc", "a\nX\nc")
	if _, err := Apply("totally\ndifferent\ncontent", d); err == nil {
		t.Error("expected error applying hunks to unrelated content")
	}
}

func TestComputeDeterministic(t *testing.T) {
	old := "a\nb\nc\nd"
	new := "a\nc\nd\ne"
	first := Compute(old, new)
	for i := 0; i < 5; i++ {
		if got := Compute(old, new); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first result", i)
		}
	}
}

func TestLineNumbers(t *testing.T) {
	d := Compute("a\nb\nc", "a\nX\nc")
	if len(d.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(d.Hunks))
	}
	want := []Line{
		{Kind: Unchanged, Text: "a", OldNumber: 1, NewNumber: 1},
		{Kind: Removed, Text: "b", OldNumber: 2},
		{Kind: Added, Text: "X", NewNumber: 2},
		{Kind: Unchanged, Text: "c", OldNumber: 3, NewNumber: 3},
	}
	if !reflect.DeepEqual(d.Hunks[0].Lines, want) {
		t.Errorf("hunk lines = %+v, want %+v", d.Hunks[0].Lines, want)
	}
	h := d.Hunks[0]
	if h.OldStart != 1 || h.OldCount != 3 || h.NewStart != 1 || h.NewCount != 3 {
		t.Errorf("hunk header = -%d,%d +%d,%d, want -1,3 +1,3", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
}

func TestInline(t *testing.T) {
	tests := []struct {
		old, new string
		want     InlineSpan
	}{
		{"print(1)", "print(2)", InlineSpan{OldStart: 6, OldEnd: 7, NewStart: 6, NewEnd: 7}},
		{"same", "same", InlineSpan{OldStart: 4, OldEnd: 4, NewStart: 4, NewEnd: 4}},
		{"", "new", InlineSpan{OldStart: 0, OldEnd: 0, NewStart: 0, NewEnd: 3}},
	}
	for _, tt := range tests {
		if got := Inline(tt.old, tt.new); got != tt.want {
			t.Errorf("Inline(%q, %q) = %+v, want %+v", tt.old, tt.new, got, tt.want)
		}
	}
}

func TestUnified(t *testing.T) {
	d := Compute("print(1)", "print(2)")
	out := Unified(d, "a/main.py", "b/main.py")
	for _, want := range []string{"--- a/main.py", "+++ b/main.py", "@@ -1,1 +1,1 @@", "-print(1)", "+print(2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("unified output missing %q:\n%s", want, out)
		}
	}
	if Unified(Compute("x", "x"), "a", "b") != "" {
		t.Error("expected empty unified output for identical contents")
	}
}
