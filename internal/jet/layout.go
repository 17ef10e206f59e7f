package jet

// Layout enumerates the multiindices of n variables up to total degree d in
// graded order: by degree, then lexicographically by multipointer. Position
// 0 is the constant term, positions 1..n the linear terms in variable order.
type Layout struct {
	n, d  int
	index []Multiindex
	pos   map[string]int
	start []int
	// prod[i] lists (j, target) pairs with index[i]+index[j] == index[target].
	prod [][]pair
}

type pair struct{ j, target int }

// NewLayout builds the layout of n variables and degree d.
func NewLayout(n, d int) *Layout {
	l := &Layout{n: n, d: d, pos: make(map[string]int)}
	for k := 0; k <= d; k++ {
		l.start = append(l.start, len(l.index))
		mp := make(Multipointer, k)
		if k > 0 && n == 0 {
			continue
		}
		for {
			mi, _ := mp.ToMultiindex(n)
			l.pos[mi.key()] = len(l.index)
			l.index = append(l.index, mi)
			if !mp.Next(n) {
				break
			}
		}
	}
	l.start = append(l.start, len(l.index))

	l.prod = make([][]pair, len(l.index))
	for i, a := range l.index {
		for j, b := range l.index {
			if a.Module()+b.Module() > d {
				continue
			}
			l.prod[i] = append(l.prod[i], pair{j, l.pos[a.Add(b).key()]})
		}
	}
	return l
}

func (l *Layout) Vars() int   { return l.n }
func (l *Layout) Degree() int { return l.d }
func (l *Layout) Size() int   { return len(l.index) }

// Multiindex returns the multiindex stored at position i.
func (l *Layout) Multiindex(i int) Multiindex {
	return append(Multiindex(nil), l.index[i]...)
}

// Index returns the position of mi.
func (l *Layout) Index(mi Multiindex) (int, bool) {
	if len(mi) != l.n || mi.Module() > l.d {
		return 0, false
	}
	i, ok := l.pos[mi.key()]
	return i, ok
}

// DegreeRange returns the half-open position range of degree k terms.
func (l *Layout) DegreeRange(k int) (from, to int) {
	return l.start[k], l.start[k+1]
}

// Degree of the term at position i.
func (l *Layout) degreeOf(i int) int {
	for k := 0; k <= l.d; k++ {
		if i < l.start[k+1] {
			return k
		}
	}
	return l.d
}
