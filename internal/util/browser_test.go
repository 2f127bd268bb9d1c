package util

import (
	"reflect"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://localhost:5006"

	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
		{"darwin", "open", []string{url}},
		{"linux", "xdg-open", []string{url}},
		{"freebsd", "xdg-open", []string{url}},
	}
	for _, tc := range cases {
		name, args := browserCommand(tc.goos, url)
		if name != tc.name || !reflect.DeepEqual(args, tc.args) {
			t.Fatalf("%s: got %s %v, want %s %v", tc.goos, name, args, tc.name, tc.args)
		}
	}
}
