package domain

import "testing"

func TestParsePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
		str   string
	}{
		{name: "root slash", input: "/", want: Path{}, str: "/"},
		{name: "empty", input: "", want: Path{}, str: "/"},
		{name: "single", input: "/A", want: Path{"A"}, str: "/A"},
		{name: "nested", input: "/A/a/b", want: Path{"A", "a", "b"}, str: "/A/a/b"},
		{name: "double slashes", input: "//A//a/", want: Path{"A", "a"}, str: "/A/a"},
		{name: "relative", input: "A/a", want: Path{"A", "a"}, str: "/A/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePath(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "A"

	a := base.Child("a")
	b := base.Child("b")

	if a.String() != "/A/a" {
		t.Errorf("expected /A/a, got %s", a)
	}
	if b.String() != "/A/b" {
		t.Errorf("expected /A/b, got %s", b)
	}
}

func TestPathHasPrefix(t *testing.T) {
	p := ParsePath("/A/a/b")

	if !p.HasPrefix(Path{}) {
		t.Error("every path has the root as prefix")
	}
	if !p.HasPrefix(ParsePath("/A/a")) {
		t.Error("expected /A/a to be a prefix")
	}
	if p.HasPrefix(ParsePath("/A/b")) {
		t.Error("expected /A/b not to be a prefix")
	}
	if ParsePath("/A").HasPrefix(p) {
		t.Error("a longer path cannot be a prefix")
	}
}

func TestPathName(t *testing.T) {
	if got := RootPath.Name(); got != "/" {
		t.Errorf("root name = %q, want /", got)
	}
	if got := ParsePath("/A/a").Name(); got != "a" {
		t.Errorf("name = %q, want a", got)
	}
}
