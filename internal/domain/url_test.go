package domain

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fragment stripped",
			raw:  "https://example.com/post#section",
			want: "https://example.com/post",
		},
		{
			name: "default https port stripped",
			raw:  "https://example.com:443/post",
			want: "https://example.com/post",
		},
		{
			name: "default http port stripped",
			raw:  "http://example.com:80/",
			want: "http://example.com/",
		},
		{
			name: "non-default port kept",
			raw:  "https://example.com:8443/post",
			want: "https://example.com:8443/post",
		},
		{
			name: "bare host gains root path",
			raw:  "https://example.com",
			want: "https://example.com/",
		},
		{
			name: "query preserved",
			raw:  "https://example.com/search?q=go#top",
			want: "https://example.com/search?q=go",
		},
		{
			name: "unparseable returned unchanged",
			raw:  "not a url",
			want: "not a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.raw); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL_DedupEquivalence(t *testing.T) {
	a := NormalizeURL("https://example.com/post#section")
	b := NormalizeURL("https://example.com:443/post")
	if a != b {
		t.Errorf("expected same normalized URL, got %q and %q", a, b)
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain host", raw: "https://github.com/foo/bar", want: "github.com"},
		{name: "www stripped", raw: "https://www.example.com/", want: "example.com"},
		{name: "uppercase lowered", raw: "https://WWW.Example.COM/", want: "example.com"},
		{name: "malformed degrades to empty", raw: "http://[::1", want: ""},
		{name: "no host", raw: "mailto:someone@example.com", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostOf(tt.raw); got != tt.want {
				t.Errorf("HostOf(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsInternalURL(t *testing.T) {
	if !IsInternalURL("chrome://settings") {
		t.Error("chrome:// should be internal")
	}
	if !IsInternalURL("about:blank") {
		t.Error("about: should be internal")
	}
	if IsInternalURL("https://example.com/about:blank") {
		t.Error("regular https URL should not be internal")
	}
}
