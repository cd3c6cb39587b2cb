package fs

import "testing"

func TestIsUnsafePath(t *testing.T) {
	tests := []struct {
		path   string
		unsafe bool
	}{
		{"", true},                  // empty
		{".", true},                 // original dot
		{"..", true},                // original double dot
		{"./", true},                // dot with slash
		{"./.", true},               // multiple dots
		{"./../../foo/../..", true}, // complex path to root
		{"/", true},                 // root
		{"//", true},                // double slash
		{"//foo", true},             // path with double slash
		{"/foo", false},             // normal absolute path
		{"foo", false},              // normal relative path
		{"foo/bar", false},          // normal nested path
		{"foo/bar/", false},         // trailing slash
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			unsafe, err := IsUnsafePath(tt.path)
			if err != nil {
				t.Fatalf("IsUnsafePath() error = %v", err)
			}
			if unsafe != tt.unsafe {
				t.Errorf("IsUnsafePath(%q) = %v, want %v", tt.path, unsafe, tt.unsafe)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		name string
		ok   bool
	}{
		{"file.txt", "file.txt", true},
		{"dir/file.txt", "file.txt", true},
		{"/abs/dir/", "dir", true},
		{"./a/../b", "b", true},
		{".hidden", ".hidden", true},
		{".", "", false},
		{"..", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			name, ok := BaseName(tt.path)
			if name != tt.name || ok != tt.ok {
				t.Errorf("BaseName(%q) = (%q, %v), want (%q, %v)", tt.path, name, ok, tt.name, tt.ok)
			}
		})
	}
}
