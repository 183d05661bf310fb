package bot

import "testing"

func TestParseRiotID(t *testing.T) {
	tests := []struct {
		raw     string
		name    string
		tag     string
		wantErr bool
	}{
		{raw: "AGreenFruit#PEPE", name: "AGreenFruit", tag: "PEPE"},
		{raw: "Foo#123", name: "Foo", tag: "123"},
		{raw: " Foo # 123 ", name: "Foo", tag: "123"},
		{raw: "Name#With#Hash", name: "Name", tag: "With#Hash"},
		{raw: "NoTag", wantErr: true},
		{raw: "#123", wantErr: true},
		{raw: "Foo#", wantErr: true},
		{raw: "#", wantErr: true},
	}

	for _, tt := range tests {
		name, tag, err := ParseRiotID(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRiotID(%q) expected an error, got %q/%q", tt.raw, name, tag)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRiotID(%q) failed: %v", tt.raw, err)
			continue
		}
		if name != tt.name || tag != tt.tag {
			t.Errorf("ParseRiotID(%q) = %q/%q, want %q/%q", tt.raw, name, tag, tt.name, tt.tag)
		}
	}
}
