package helpers

import "testing"

func TestRandomSuffixLength(t *testing.T) {
	for _, n := range []int{1, 5, 10} {
		s, err := RandomSuffix(n)
		if err != nil {
			t.Fatalf("RandomSuffix(%d): %v", n, err)
		}
		if len(s) != n {
			t.Fatalf("RandomSuffix(%d) length = %d", n, len(s))
		}
	}
}

func TestRandomSuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := RandomSuffix(10)
		if err != nil {
			t.Fatalf("RandomSuffix: %v", err)
		}
		if seen[s] {
			t.Fatalf("duplicate suffix %q", s)
		}
		seen[s] = true
	}
}
