package multisig

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestRequiredCount(t *testing.T) {
	cases := map[string]struct {
		count     int
		threshold int
		want      int
	}{
		"80% of 4 rounds up":     {count: 4, threshold: 80, want: 4},
		"80% of 5 is exact":      {count: 5, threshold: 80, want: 4},
		"half of 4":              {count: 4, threshold: 50, want: 2},
		"67% of 3 rounds up":     {count: 3, threshold: 67, want: 3},
		"90% of 10":              {count: 10, threshold: 90, want: 9},
		"unanimous":              {count: 4, threshold: 100, want: 4},
		"zero threshold needs 1": {count: 4, threshold: 0, want: 1},
		"1% of 4 needs 1":        {count: 4, threshold: 1, want: 1},
		"empty registry":         {count: 0, threshold: 80, want: 1},
		"threshold above 100":    {count: 4, threshold: 250, want: 4},
		"negative threshold":     {count: 4, threshold: -5, want: 1},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, RequiredCount(tc.count, tc.threshold))
		})
	}
}

func TestRequiredCountBounds(t *testing.T) {
	for n := 1; n <= 30; n++ {
		prev := 0
		for pct := 0; pct <= MaxThreshold; pct++ {
			got := RequiredCount(n, pct)
			if got < 1 || got > n {
				t.Fatalf("RequiredCount(%d, %d) = %d, out of [1, %d]", n, pct, got, n)
			}
			if got < prev {
				t.Fatalf("RequiredCount(%d, %d) = %d, decreased from %d", n, pct, got, prev)
			}
			prev = got

			if bigger := RequiredCount(n+1, pct); bigger < got {
				t.Fatalf("RequiredCount(%d, %d) = %d, less than %d for %d validators", n+1, pct, bigger, got, n)
			}
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	assert.Nil(t, ValidateThreshold(0))
	assert.Nil(t, ValidateThreshold(80))
	assert.Nil(t, ValidateThreshold(100))
	assert.IsErr(t, ErrInvalidThreshold, ValidateThreshold(101))
}
