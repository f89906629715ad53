package sorter

// Quick sorts a in place with quicksort: middle-element pivot and a
// two-cursor Hoare partition. It is not stable.
//
// Reading the pivot costs one access. Every cursor test costs one
// comparison and one access, including the test that stops the cursor.
// The cursors-crossed check costs one comparison whichever way it goes,
// and a swap costs four accesses.
func Quick(a []int) Counters {
	var c Counters
	quickSort(a, 0, len(a)-1, ascending, &c)

	return c
}

// quickSort sorts the inclusive range a[i..k]. It recurses into the
// smaller partition and loops on the larger one, so stack depth stays
// logarithmic. Partitions are independent, so the visiting order does not
// change the totals.
func quickSort(a []int, i, k int, less order, c *Counters) {
	for i < k {
		j := partition(a, i, k, less, c)

		if j-i < k-j {
			quickSort(a, i, j, less, c)
			i = j + 1
		} else {
			quickSort(a, j+1, k, less, c)
			k = j
		}
	}
}

// partition rearranges a[i..k] so that every element of a[i..h] is no
// greater than every element of a[h+1..k], and returns h.
//
// The pivot value lies inside the range, so the cursors always stop on it
// or on a swapped element before leaving [i, k]. The scans are still
// bounded and h is clamped to [i, k-1]: a run of equal values must never
// drive a cursor off the slice or hand back an empty side. Neither guard
// fires on a well-behaved partition, so the counts are unaffected.
func partition(a []int, i, k int, less order, c *Counters) int {
	pivot := a[i+(k-i)/2]
	c.access(1)

	l, h := i, k

	for {
		for l < k && less(a[l], pivot) {
			c.compare(1)
			c.access(1)
			l++
		}
		c.compare(1)
		c.access(1)

		for h > i && less(pivot, a[h]) {
			c.compare(1)
			c.access(1)
			h--
		}
		c.compare(1)
		c.access(1)

		c.compare(1)
		if l >= h {
			break
		}

		a[l], a[h] = a[h], a[l]
		c.access(4)
		l++
		h--
	}

	if i < k && h >= k {
		h = k - 1
	}
	if h < i {
		h = i
	}

	return h
}
