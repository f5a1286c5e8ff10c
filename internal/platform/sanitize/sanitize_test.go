package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  family event ", want: "family event"},
		{in: "<script>alert(1)</script>flu", want: "flu"},
		{in: "<b>Sick</b> & tired", want: "Sick & tired"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
