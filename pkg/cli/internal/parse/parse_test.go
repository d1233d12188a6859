package parse

import "testing"

func TestKeyValue(t *testing.T) {
	tests := []struct {
		in         string
		delims     []rune
		key, value string
		ok         bool
	}{
		{"Content-Type: application/json", nil, "Content-Type", " application/json", true},
		{"X-Url: http://a:8080", nil, "X-Url", " http://a:8080", true},
		{"a=b", []rune{':', '='}, "a", "b", true},
		{"novalue", nil, "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := KeyValue(tt.in, tt.delims...)
		if key != tt.key || value != tt.value || ok != tt.ok {
			t.Errorf("KeyValue(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.in, key, value, ok, tt.key, tt.value, tt.ok)
		}
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		in          string
		name, value string
		wantErr     bool
	}{
		{"Content-Type: application/json", "Content-Type", "application/json", false},
		{"  X-Url :http://a:8080 ", "X-Url", "http://a:8080", false},
		{"X-Empty:", "X-Empty", "", false},
		{"broken", "", "", true},
		{": value", "", "", true},
	}
	for _, tt := range tests {
		name, value, err := Header(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Header(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if name != tt.name || value != tt.value {
			t.Errorf("Header(%q) = (%q, %q), want (%q, %q)", tt.in, name, value, tt.name, tt.value)
		}
	}
}
