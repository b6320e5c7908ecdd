package primitives

import "fmt"

// Trivial returns the group of order one.
func Trivial() *Definition {
	return &Definition{
		Name:           "Z_1",
		ShortName:      "Z1",
		Description:    "trivial group",
		Representation: []string{"e"},
		MultTable:      [][]int{{0}},
	}
}

// Cyclic returns Z_n with elements e, a, a^2, ...
func Cyclic(n int) (*Definition, error) {
	if n < 1 || n > MaxOrder {
		return nil, fmt.Errorf("%w: cyclic order %d out of range", ErrInvalid, n)
	}
	table := make([][]int, n)
	for i := range table {
		table[i] = make([]int, n)
		for j := range table[i] {
			table[i][j] = (i + j) % n
		}
	}
	return &Definition{
		Name:           fmt.Sprintf("Z_%d", n),
		ShortName:      fmt.Sprintf("Z%d", n),
		Description:    fmt.Sprintf("cyclic group of order %d", n),
		Representation: powers("a", n, nil),
		MultTable:      table,
	}, nil
}

// Dihedral returns D_n, the symmetries of a regular n-gon (order 2n).
func Dihedral(n int) (*Definition, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: dihedral degree %d must be at least 3", ErrInvalid, n)
	}
	rotate := make([]int, n)
	flip := make([]int, n)
	for i := 0; i < n; i++ {
		rotate[i] = (i + 1) % n
		flip[i] = (n - i) % n
	}
	return NewPermutationBuilder(fmt.Sprintf("D_%d", n), n).
		ShortName(fmt.Sprintf("D%d", n)).
		Description(fmt.Sprintf("dihedral group of order %d", 2*n)).
		Generator(rotate...).
		Generator(flip...).
		Build()
}

// Symmetric returns S_n, generated by a transposition and an n-cycle.
func Symmetric(n int) (*Definition, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: symmetric degree %d must be at least 2", ErrInvalid, n)
	}
	cycle := make([]int, n)
	for i := range cycle {
		cycle[i] = i
	}
	b := NewPermutationBuilder(fmt.Sprintf("S_%d", n), n).
		ShortName(fmt.Sprintf("S%d", n)).
		Description(fmt.Sprintf("symmetric group on %d points", n)).
		Cycle(0, 1)
	if n > 2 {
		b.Cycle(cycle...)
	}
	return b.Build()
}

// Alternating returns A_n, generated by the 3-cycles (0 1 k).
func Alternating(n int) (*Definition, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: alternating degree %d must be at least 3", ErrInvalid, n)
	}
	b := NewPermutationBuilder(fmt.Sprintf("A_%d", n), n).
		ShortName(fmt.Sprintf("A%d", n)).
		Description(fmt.Sprintf("alternating group on %d points", n))
	for k := 2; k < n; k++ {
		b.Cycle(0, 1, k)
	}
	return b.Build()
}

// Dicyclic returns Dic_n = <a, x | a^2n = 1, x^2 = a^n, x a x^-1 = a^-1>,
// of order 4n. Dic_2 is the quaternion group Q_8.
//
// Element k + 2n*e stands for a^k x^e.
func Dicyclic(n int) (*Definition, error) {
	if n < 2 || 4*n > MaxOrder {
		return nil, fmt.Errorf("%w: dicyclic parameter %d out of range", ErrInvalid, n)
	}
	m := 2 * n
	order := 2 * m
	table := make([][]int, order)
	for i := 0; i < order; i++ {
		table[i] = make([]int, order)
		k1, e1 := i%m, i/m
		for j := 0; j < order; j++ {
			k2, e2 := j%m, j/m
			var k, e int
			switch {
			case e1 == 0:
				k, e = k1+k2, e2
			case e2 == 0:
				k, e = k1-k2, 1
			default:
				k, e = k1-k2+n, 0
			}
			table[i][j] = ((k%m+m)%m + m*e)
		}
	}

	name, short := fmt.Sprintf("Dic_%d", n), fmt.Sprintf("Dic%d", n)
	desc := fmt.Sprintf("dicyclic group of order %d", order)
	if n == 2 {
		name, short, desc = "Q_8", "Q8", "quaternion group"
	}
	rep := powers("a", m, nil)
	rep = append(rep, powers("a", m, []string{"x"})...)
	return &Definition{
		Name:           name,
		ShortName:      short,
		Description:    desc,
		Representation: rep,
		MultTable:      table,
	}, nil
}

// DirectProduct returns a x b. Element i*|b|+j stands for the pair (i, j).
func DirectProduct(a, b *Definition) (*Definition, error) {
	na, nb := a.Order(), b.Order()
	if na == 0 || nb == 0 {
		return nil, fmt.Errorf("%w: direct product of unresolved definitions", ErrInvalid)
	}
	if na*nb > MaxOrder {
		return nil, fmt.Errorf("%w: %s x %s has order %d, maximum is %d", ErrInvalid, a.Name, b.Name, na*nb, MaxOrder)
	}
	n := na * nb
	table := make([][]int, n)
	rep := make([]string, n)
	for i := 0; i < n; i++ {
		ia, ib := i/nb, i%nb
		rep[i] = fmt.Sprintf("(%s,%s)", a.ElementName(ia), b.ElementName(ib))
		table[i] = make([]int, n)
		for j := 0; j < n; j++ {
			ja, jb := j/nb, j%nb
			table[i][j] = a.MultTable[ia][ja]*nb + b.MultTable[ib][jb]
		}
	}
	rep[0] = "e"

	short := a.ShortName + "x" + b.ShortName
	if a.ShortName == "" || b.ShortName == "" {
		short = ""
	}
	return &Definition{
		Name:           a.Name + " x " + b.Name,
		ShortName:      short,
		Description:    "direct product of " + a.Name + " and " + b.Name,
		Representation: rep,
		MultTable:      table,
	}, nil
}

// powers returns names for g^0..g^(n-1), each followed by suffix.
func powers(g string, n int, suffix []string) []string {
	out := make([]string, n)
	for k := 0; k < n; k++ {
		var s string
		switch k {
		case 0:
			s = "e"
		case 1:
			s = g
		default:
			s = fmt.Sprintf("%s^%d", g, k)
		}
		for _, x := range suffix {
			if s == "e" {
				s = x
			} else {
				s += " " + x
			}
		}
		out[k] = s
	}
	return out
}
