package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "unknown commit",
			info: Info{Version: "v1.2.0", Commit: "unknown", Date: "unknown"},
			want: "v1.2.0",
		},
		{
			name: "short commit ignored",
			info: Info{Version: "v1.2.0", Commit: "abc", Date: "2024-01-01"},
			want: "v1.2.0",
		},
		{
			name: "commit without date",
			info: Info{Version: "v1.2.0", Commit: "0123456789abcdef", Date: "unknown"},
			want: "v1.2.0 (0123456)",
		},
		{
			name: "commit and date",
			info: Info{Version: "v1.2.0", Commit: "0123456789abcdef", Date: "2024-01-01T00:00:00Z"},
			want: "v1.2.0 (0123456, built 2024-01-01T00:00:00Z)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("Info.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetVersion_CompileTime(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	if got := GetVersion(); got != "v9.9.9" {
		t.Errorf("GetVersion() = %q, want v9.9.9", got)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "icon-organizer")
	out := buf.String()
	for _, want := range []string{"icon-organizer version", "Package: icon-organizer", "Commit:", "Build Date:"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintVersion() output missing %q:\n%s", want, out)
		}
	}
}
