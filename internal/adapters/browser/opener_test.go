package browser

import (
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		browser string
		url     string
		want    []string
		wantErr bool
	}{
		{
			name: "linux default",
			goos: "linux",
			url:  "https://go.dev",
			want: []string{"xdg-open", "https://go.dev"},
		},
		{
			name: "darwin default",
			goos: "darwin",
			url:  "https://go.dev",
			want: []string{"open", "https://go.dev"},
		},
		{
			name: "windows default",
			goos: "windows",
			url:  "https://go.dev",
			want: []string{"cmd", "/c", "start", "", "https://go.dev"},
		},
		{
			name:    "browser env appends url",
			goos:    "linux",
			browser: "firefox --new-tab",
			url:     "https://go.dev",
			want:    []string{"firefox", "--new-tab", "https://go.dev"},
		},
		{
			name:    "browser env placeholder and fallback list",
			goos:    "linux",
			browser: "w3m %s:lynx",
			url:     "https://go.dev",
			want:    []string{"w3m", "https://go.dev"},
		},
		{
			name:    "relative url",
			goos:    "linux",
			url:     "go.dev",
			wantErr: true,
		},
		{
			name:    "unsupported os",
			goos:    "plan9",
			url:     "https://go.dev",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Opener{goos: tt.goos, getenv: func(string) string { return tt.browser }}
			cmd, err := o.Command(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(cmd.Args) != len(tt.want) {
				t.Fatalf("args = %q, want %q", cmd.Args, tt.want)
			}
			for i := range tt.want {
				if cmd.Args[i] != tt.want[i] {
					t.Errorf("args = %q, want %q", cmd.Args, tt.want)
					break
				}
			}
		})
	}
}
