package sorter

// Merge sorts a with top-down merge sort. It is stable; ties keep the
// element from the left run.
//
// Ranges are half-open and split at i+(k-i)/2, so the left run is never
// longer than the right. A merge over m elements reads each element once
// when it becomes a run front, writes it once into the buffer and copies
// it back once: exactly 3m accesses. Every front-to-front comparison
// counts one comparison. Runs of length 0 or 1 cost nothing.
func Merge(a []int) Counters {
	var c Counters
	mergeSort(a, 0, len(a), ascending, &c)

	return c
}

func mergeSort(a []int, i, k int, less order, c *Counters) {
	if k-i <= 1 {
		return
	}

	j := i + (k-i)/2
	mergeSort(a, i, j, less, c)
	mergeSort(a, j, k, less, c)
	merge(a, i, j, k, less, c)
}

// merge combines the sorted runs a[i:j] and a[j:k].
func merge(a []int, i, j, k int, less order, c *Counters) {
	buf := make([]int, 0, k-i)
	l, r := i, j

	lv, rv := a[l], a[r]
	c.access(2)

	for {
		c.compare(1)

		if !less(rv, lv) {
			buf = append(buf, lv)
			c.access(1)
			l++

			if l == j {
				break
			}

			lv = a[l]
			c.access(1)
		} else {
			buf = append(buf, rv)
			c.access(1)
			r++

			if r == k {
				break
			}

			rv = a[r]
			c.access(1)
		}
	}

	// One run is exhausted; its partner's front has already been read.
	if l < j {
		buf = append(buf, lv)
		c.access(1)

		for l++; l < j; l++ {
			buf = append(buf, a[l])
			c.access(2)
		}
	} else {
		buf = append(buf, rv)
		c.access(1)

		for r++; r < k; r++ {
			buf = append(buf, a[r])
			c.access(2)
		}
	}

	copy(a[i:k], buf)
	c.access(uint64(len(buf)))
}
