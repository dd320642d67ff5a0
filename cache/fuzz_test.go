package cache

import (
	"testing"
)

// FuzzOperations replays a byte string as a sequence of cache operations
// and checks the structural invariants after each step.
func FuzzOperations(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5})
	f.Add([]byte("set get delete clear"))
	f.Add([]byte{255, 0, 127, 63, 31})

	f.Fuzz(func(t *testing.T, program []byte) {
		const max = 8
		c, err := New(Options[byte, int]{MaxEntries: max})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer c.Close()

		shadow := map[byte]int{}
		for i, b := range program {
			k := b % 16
			switch b % 5 {
			case 0:
				c.Set(k, i)
				shadow[k] = i
			case 1:
				v, ok := c.Get(k)
				// The shadow map never evicts, so a cache hit must agree
				// with it; a miss is always legal (eviction).
				if ok {
					if want, tracked := shadow[k]; tracked && v != want {
						t.Fatalf("Get(%d) = %d, shadow has %d", k, v, want)
					}
				}
			case 2:
				c.Delete(k)
				delete(shadow, k)
			case 3:
				c.Contains(k)
			default:
				c.Clear()
				shadow = map[byte]int{}
			}
			if n := c.Len(); n > max {
				t.Fatalf("Len() = %d after op %d, exceeds MaxEntries", n, i)
			}
		}

		s := c.Stats()
		if s.HitRatio < 0 || s.HitRatio > 1 {
			t.Fatalf("HitRatio = %v out of range", s.HitRatio)
		}
	})
}
