package diff

import (
	"errors"
	"testing"

	"github.com/codimo/textmerge/internal/core"
)

func allDiffers() map[string]Differ {
	differs := make(map[string]Differ)
	for _, name := range Names() {
		d, err := New(name)
		if err != nil {
			panic(err)
		}
		differs[name] = d
	}
	return differs
}

func countTags(script Script) map[Tag]int {
	counts := make(map[Tag]int)
	for _, entry := range script {
		counts[entry.Tag]++
	}
	return counts
}

func TestDiff_EmptyFiles(t *testing.T) {
	for name, d := range allDiffers() {
		script := d.Diff("", "")
		if len(script) != 0 {
			t.Errorf("%s: expected empty script for empty files, got %d entries", name, len(script))
		}
	}
}

func TestDiff_IdenticalFiles(t *testing.T) {
	text := "line1\nline2\nline3\n"
	for name, d := range allDiffers() {
		counts := countTags(d.Diff(text, text))
		if counts[Added] != 0 || counts[Removed] != 0 {
			t.Errorf("%s: expected no changes for identical files, got %v", name, counts)
		}
		if counts[Old] != 3 {
			t.Errorf("%s: expected 3 unchanged lines, got %d", name, counts[Old])
		}
	}
}

func TestDiff_SimpleAddition(t *testing.T) {
	old := "line1\nline2\n"
	new := "line1\nline2\nline3\n"

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		want := Script{{"line1\n", Old}, {"line2\n", Old}, {"line3\n", Added}}
		if !equalScripts(script, want) {
			t.Errorf("%s: got %v, want %v", name, script, want)
		}
	}
}

func TestDiff_SimpleDeletion(t *testing.T) {
	old := "line1\nline2\nline3\n"
	new := "line1\nline3\n"

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		want := Script{{"line1\n", Old}, {"line2\n", Removed}, {"line3\n", Old}}
		if !equalScripts(script, want) {
			t.Errorf("%s: got %v, want %v", name, script, want)
		}
	}
}

func TestDiff_Modification(t *testing.T) {
	old := "line1\nline2\nline3\n"
	new := "line1\nmodified\nline3\n"

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		want := Script{{"line1\n", Old}, {"line2\n", Removed}, {"modified\n", Added}, {"line3\n", Old}}
		if !equalScripts(script, want) {
			t.Errorf("%s: got %v, want %v", name, script, want)
		}
	}
}

func TestDiff_MissingTrailingNewline(t *testing.T) {
	// "3" and "3\n" are different lines
	old := "0\n1\n2\n3"
	new := "0\n1\n2\n3\nA"

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		want := Script{
			{"0\n", Old}, {"1\n", Old}, {"2\n", Old},
			{"3", Removed}, {"3\n", Added}, {"A", Added},
		}
		if !equalScripts(script, want) {
			t.Errorf("%s: got %v, want %v", name, script, want)
		}
	}
}

func TestDiff_MultipleChanges(t *testing.T) {
	old := `line1
line2
line3
line4
line5`

	new := `line1
modified2
line3
line4
added5
line5`

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		if got := Revert(script); got != old {
			t.Errorf("%s: revert doesn't match old.\nGot:\n%s\nWant:\n%s", name, got, old)
		}
		if got := Apply(script); got != new {
			t.Errorf("%s: apply doesn't match new.\nGot:\n%s\nWant:\n%s", name, got, new)
		}
	}
}

func TestDiff_ScriptIsCanonical(t *testing.T) {
	old := "a\nb\nc\nd\n"
	new := "x\ny\nb\nz\nd\nw\n"

	for name, d := range allDiffers() {
		script := d.Diff(old, new)
		for i := 1; i < len(script); i++ {
			if script[i-1].Tag == Added && script[i].Tag == Removed {
				t.Errorf("%s: insertion before removal at %d: %v", name, i, script)
			}
		}
		if Apply(script) != new || Revert(script) != old {
			t.Errorf("%s: script is not total: %v", name, script)
		}
	}
}

func TestCanonical_ReordersChangeRuns(t *testing.T) {
	script := Script{
		{"a\n", Old},
		{"x\n", Added},
		{"b\n", Removed},
		{"y\n", Added},
		{"c\n", Removed},
		{"d\n", Old},
	}

	want := Script{
		{"a\n", Old},
		{"b\n", Removed},
		{"c\n", Removed},
		{"x\n", Added},
		{"y\n", Added},
		{"d\n", Old},
	}

	if got := Canonical(script); !equalScripts(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"":            {},
		"single line": {"single line"},
		"a\nb\nc":     {"a\n", "b\n", "c"},
		"a\nb\n":      {"a\n", "b\n"},
		"\n":          {"\n"},
		"a\n\nb":      {"a\n", "\n", "b"},
	}

	for text, want := range cases {
		got := SplitLines(text)
		if len(got) != len(want) {
			t.Errorf("SplitLines(%q): got %q, want %q", text, got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("SplitLines(%q): got %q, want %q", text, got, want)
				break
			}
		}
	}
}

func TestNew_UnknownDiffer(t *testing.T) {
	_, err := New("patience")
	if !errors.Is(err, core.ErrUnknownDiffer) {
		t.Errorf("expected ErrUnknownDiffer, got %v", err)
	}
}

func TestTag_String(t *testing.T) {
	if Old.String() != "old" || Added.String() != "added" || Removed.String() != "removed" {
		t.Error("unexpected tag names")
	}
	if Tag(7).String() != "tag(7)" {
		t.Errorf("unexpected name for unknown tag: %s", Tag(7))
	}
}

func equalScripts(a, b Script) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func BenchmarkMyers_SmallFile(b *testing.B) {
	old := "line1\nline2\nline3\nline4\nline5"
	new := "line1\nmodified\nline3\nline4\nadded\nline5"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Myers{}.Diff(old, new)
	}
}

func BenchmarkTextDiff_MediumFile(b *testing.B) {
	// Generate larger test files
	old := ""
	new := ""
	for i := 0; i < 100; i++ {
		old += "line content " + string(rune('a'+i%26)) + "\n"
		if i%10 == 5 {
			new += "modified content\n"
		} else {
			new += "line content " + string(rune('a'+i%26)) + "\n"
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		TextDiff{}.Diff(old, new)
	}
}
