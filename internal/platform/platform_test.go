package platform

import "testing"

func TestGraphSupportedOn(t *testing.T) {
	cases := map[string]bool{
		"linux":   true,
		"darwin":  true,
		"freebsd": true,
		"windows": false,
	}
	for goos, want := range cases {
		if got := GraphSupportedOn(goos); got != want {
			t.Fatalf("GraphSupportedOn(%q) = %v, want %v", goos, got, want)
		}
	}
}
