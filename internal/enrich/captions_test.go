package enrich

import "testing"

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://example.com/watch?v=nope", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := VideoIDFromURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("VideoIDFromURL(%q) expected error, got %q", tt.url, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("VideoIDFromURL(%q) unexpected error: %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("VideoIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCleanCaptionText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"timestamps", "[00:01] hello [00:02:15] world", "hello world"},
		{"whitespace", "hello\n\n  world\tagain", "hello world again"},
		{"already clean", "hello world", "hello world"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCaptionText(tt.input); got != tt.want {
				t.Errorf("CleanCaptionText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
