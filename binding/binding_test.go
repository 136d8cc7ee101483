package binding

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid test json: %v", err)
	}
	return v
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Ada","age":36},"items":[{"sku":"A-1"},{"sku":"B-2"}],"ratio":0.5}`)
	tests := []struct {
		in, want string
	}{
		{"Hello ${user.name}", "Hello Ada"},
		{"${user.age} years", "36 years"},
		{"sku ${items[1].sku}", "sku B-2"},
		{"r=${ratio}", "r=0.5"},
		{"missing ${user.email}", "missing ${user.email}"},
		{"out of range ${items[5].sku}", "out of range ${items[5].sku}"},
		{"plain text", "plain text"},
		{"${ }", "${ }"},
	}
	for _, tc := range tests {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("nil data should keep placeholder, got %q", got)
	}
}
