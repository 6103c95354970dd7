package led

import (
	"fmt"
	"strings"
)

// Order is the byte order a strip expects on the wire, e.g. "GRB".
type Order [3]byte

var (
	RGB = Order{'R', 'G', 'B'}
	GRB = Order{'G', 'R', 'B'}
)

// ParseOrder accepts any permutation of R, G and B.
func ParseOrder(s string) (Order, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return Order{}, fmt.Errorf("color order %q: want 3 letters", s)
	}
	var o Order
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		ch := s[i]
		if ch != 'R' && ch != 'G' && ch != 'B' || seen[ch] {
			return Order{}, fmt.Errorf("color order %q: not a permutation of RGB", s)
		}
		seen[ch] = true
		o[i] = ch
	}
	return o, nil
}

func (o Order) String() string { return string(o[:]) }
