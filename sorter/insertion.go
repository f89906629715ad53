package sorter

// Insertion sorts a in place with shift-based insertion sort. It is stable.
//
// Per element i: reading the held key costs one access; each scanned
// neighbour costs one read and one comparison, including the comparison
// that ends the scan; each shift costs a read and a write; dropping the
// key into the gap costs one write. No comparison is made once the scan
// runs past the front of the slice.
func Insertion(a []int) Counters {
	var c Counters
	insertion(a, ascending, &c)

	return c
}

func insertion(a []int, less order, c *Counters) {
	for i := 1; i < len(a); i++ {
		key := a[i]
		c.access(1)

		j := i - 1
		for j >= 0 {
			v := a[j]
			c.access(1)
			c.compare(1)

			if !less(key, v) {
				break
			}

			a[j+1] = a[j]
			c.access(2)
			j--
		}

		a[j+1] = key
		c.access(1)
	}
}
