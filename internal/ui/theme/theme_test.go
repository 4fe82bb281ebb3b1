package theme

import "testing"

func TestGetTheme(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"default", "default"},
		{"catppuccin", "catppuccin-mocha"},
		{"catppuccin-mocha", "catppuccin-mocha"},
		{"unknown", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTheme(tt.name).Name; got != tt.want {
				t.Errorf("GetTheme(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNames_AllResolve(t *testing.T) {
	for _, name := range Names() {
		if GetTheme(name).Name != name {
			t.Errorf("Theme %q does not resolve to itself", name)
		}
	}
}
