package harness

import (
	"fmt"

	"github.com/weiihann/sortbench/sorter"
)

// KnownAlgorithms returns the names of the supported algorithms in
// reporting order.
func KnownAlgorithms() []string {
	algs := sorter.Algorithms()

	names := make([]string, len(algs))
	for i, alg := range algs {
		names[i] = alg.Name
	}

	return names
}

// ResolveAlgorithms maps requested names to algorithms, keeping the
// requested order. An empty request selects every algorithm.
func ResolveAlgorithms(names []string) ([]sorter.Algorithm, error) {
	if len(names) == 0 {
		return sorter.Algorithms(), nil
	}

	algs := make([]sorter.Algorithm, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		alg, err := sorter.Lookup(name)
		if err != nil {
			return nil, err
		}

		if seen[alg.Name] {
			return nil, fmt.Errorf("algorithm %s requested twice", alg.Name)
		}
		seen[alg.Name] = true

		algs = append(algs, alg)
	}

	return algs, nil
}
