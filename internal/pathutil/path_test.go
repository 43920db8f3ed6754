package pathutil

import "testing"

func TestBase(t *testing.T) {
	cases := map[string]string{
		"/foo/bar///": "bar",
		"bar":         "bar",
		"/foo/bar":    "bar",
		"":            "",
	}
	for in, want := range cases {
		if got := Base(in); got != want {
			t.Errorf("Base(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuild(t *testing.T) {
	if got := Build("/foo", "bar", "baz"); got != "/foo/bar/baz" {
		t.Errorf("Build = %q", got)
	}
	if got := Build("/foo/", "/bar"); got != "/foo/bar" {
		t.Errorf("Build = %q", got)
	}
	if got := Build("", "bar"); got != "bar" {
		t.Errorf("Build = %q", got)
	}
}

func TestAbsolute(t *testing.T) {
	if !Absolute("/etc/pki") {
		t.Error("expected /etc/pki to be absolute")
	}
	if Absolute("etc/pki") {
		t.Error("expected etc/pki to be relative")
	}
}

func TestExpandPassthrough(t *testing.T) {
	if got := Expand("/etc/pki/anchors"); got != "/etc/pki/anchors" {
		t.Errorf("Expand passthrough = %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/trust")
	if got := Expand("~/anchors"); got != "/home/trust/anchors" {
		t.Errorf("Expand(~) = %q", got)
	}
	if got := Expand("$HOME/anchors"); got != "/home/trust/anchors" {
		t.Errorf("Expand($HOME) = %q", got)
	}
}

func TestExpandTemp(t *testing.T) {
	t.Setenv("TEMP", "/tmp/trust")
	if got := Expand("$TEMP/scratch"); got != "/tmp/trust/scratch" {
		t.Errorf("Expand($TEMP) = %q", got)
	}
}

func TestExpandDoesNotMatchPrefix(t *testing.T) {
	// "~foo" is not a home-directory expansion: '~' must be followed by a
	// separator or end of string.
	if got := Expand("~foo"); got != "~foo" {
		t.Errorf("Expand(~foo) = %q, want unchanged", got)
	}
}
