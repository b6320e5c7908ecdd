package core

// PrimePower reports whether n = p^k for a prime p and k >= 1, returning p.
func PrimePower(n int) (p int, ok bool) {
	if n < 2 {
		return 0, false
	}
	for p = 2; p*p <= n; p++ {
		if n%p == 0 {
			break
		}
	}
	if p*p > n {
		return n, true
	}
	for n%p == 0 {
		n /= p
	}
	return p, n == 1
}

// PrimeFactors returns the distinct primes dividing n in increasing order.
func PrimeFactors(n int) []int {
	var out []int
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			out = append(out, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		out = append(out, n)
	}
	return out
}

// SylowOrder returns the largest power of p dividing n.
func SylowOrder(n, p int) int {
	q := 1
	for n%p == 0 {
		n /= p
		q *= p
	}
	return q
}
