package common

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallelize splits [0, nbIterations) into contiguous ranges and runs work on
// each of them on a pool bounded by the number of CPUs (or maxCpus[0]). Ranges
// never overlap, so workers writing to their own indexes of a shared slice
// leave it in index order whatever their completion order. The first error
// returned by a worker is returned once every worker is done.
func Parallelize(nbIterations int, work func(start, end int) error, maxCpus ...int) error {
	if nbIterations <= 0 {
		return nil
	}
	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 && maxCpus[0] > 0 {
		nbTasks = maxCpus[0]
	}
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var g errgroup.Group
	g.SetLimit(nbTasks)

	extraTasks := nbIterations - (nbTasks * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		start := i*nbIterationsPerCpus + extraTasksOffset
		end := start + nbIterationsPerCpus
		if extraTasks > 0 {
			end++
			extraTasks--
			extraTasksOffset++
		}
		g.Go(func() error {
			return work(start, end)
		})
	}
	return g.Wait()
}
