package scraper

import (
	"errors"
	"testing"
)

func TestHashtagURL(t *testing.T) {
	got := HashtagURL("#ai")
	want := "https://www.linkedin.com/feed/hashtag/?keywords=%23ai"
	if got != want {
		t.Fatalf("HashtagURL(#ai) = %q, want %q", got, want)
	}

	if HashtagURL(" golang ") != "https://www.linkedin.com/feed/hashtag/?keywords=golang" {
		t.Fatalf("keyword should be trimmed, got %q", HashtagURL(" golang "))
	}
}

func TestProfileURL(t *testing.T) {
	got := ProfileURL("jane-doe")
	if got != "https://www.linkedin.com/in/jane-doe/" {
		t.Fatalf("ProfileURL = %q", got)
	}
}

func TestValidateTarget(t *testing.T) {
	valid := []string{
		"https://www.linkedin.com/feed/hashtag/?keywords=ai",
		"http://localhost:8080/in/someone/",
	}
	for _, target := range valid {
		if err := validateTarget(target); err != nil {
			t.Fatalf("expected %q to be valid: %v", target, err)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"ftp://example.com/profile",
		"/in/jane-doe/",
	}
	for _, target := range invalid {
		err := validateTarget(target)
		if !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("expected ErrInvalidTarget for %q, got %v", target, err)
		}
	}
}

func TestProfileIDFromURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"https://www.linkedin.com/in/jane-doe?miniProfileUrn=abc", "jane-doe"},
		{"https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"/in/jane-doe", "jane-doe"},
		{"jane-doe", "jane-doe"},
	}
	for _, tc := range cases {
		if got := profileIDFromURL(tc.href); got != tc.want {
			t.Fatalf("profileIDFromURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"/company/acme/", "https://www.linkedin.com/company/acme/"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/asset", "https://cdn.example.com/asset"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := absoluteURL(tc.href); got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("line\none\ttwo\r"); got != "lineonetwo" {
		t.Fatalf("sanitize = %q", got)
	}
	if got := sanitize("plain"); got != "plain" {
		t.Fatalf("sanitize should leave plain text alone, got %q", got)
	}
}

func TestEmployeeCount(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"See all 10,001+ employees", "10,001+"},
		{"See all 250 employees", "250"},
		{"", ""},
		{"no count here", ""},
	}
	for _, tc := range cases {
		if got := employeeCount(tc.label); got != tc.want {
			t.Fatalf("employeeCount(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}
