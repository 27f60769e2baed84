package collector

import "testing"

func TestGoogleFetcher_SearchURL(t *testing.T) {
	f := NewGoogleFetcher("https://example.test/", 5, "/bin/true", "")
	got := f.searchURL("apple iphone 13")
	want := "https://example.test/search?tbm=shop&hl=tr&gl=tr&q=apple+iphone+13"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if f.Name() != "google" {
		t.Errorf("unexpected name %q", f.Name())
	}
}
