package version

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "1.2.3", want: "1.2.3"},
		{name: "v prefix", in: "v1.2.3", want: "1.2.3"},
		{name: "whitespace", in: "  7.40.0 ", want: "7.40.0"},
		{name: "empty", in: "", wantErr: true},
		{name: "two segments", in: "1.2", wantErr: true},
		{name: "four segments", in: "1.2.3.4", wantErr: true},
		{name: "non numeric", in: "1.2.x", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a    string
		b    string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.9.0", "1.10.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"v7.40.0", "7.40.0", 0},
	}
	for _, tc := range cases {
		got, err := Compare(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Compare(%q, %q) error: %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareInvalid(t *testing.T) {
	if _, err := Compare("1.2", "1.0.0"); err == nil {
		t.Fatal("expected error for malformed left version")
	}
	if _, err := Compare("1.0.0", "oops"); err == nil {
		t.Fatal("expected error for malformed right version")
	}
}
