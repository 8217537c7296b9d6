package recorder

import "testing"

func TestFormatMetadata(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]any
		want string
	}{
		{"nil", nil, "{}"},
		{"empty", map[string]any{}, "{}"},
		{"single", map[string]any{"severity": 3}, "{severity=3}"},
		{"sorted keys", map[string]any{"b": 2, "a": 1, "c": 3}, "{a=1, b=2, c=3}"},
		{"mixed values", map[string]any{"lane": "ring_4_0", "wet": true}, "{lane=ring_4_0, wet=true}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatMetadata(tc.meta); got != tc.want {
				t.Fatalf("FormatMetadata(%v) = %q, want %q", tc.meta, got, tc.want)
			}
		})
	}
}
