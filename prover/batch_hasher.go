package prover

import (
	"hash"
	"runtime"
	"sync"

	"github.com/celestiaorg/amt"
)

// serialThreshold is the level width below which pairs are hashed on the
// calling goroutine.
const serialThreshold = 64

// BatchProcessor hashes many independent node pairs in parallel.
type BatchProcessor struct {
	maxWorkers int
	hasherPool sync.Pool
}

// NewBatchProcessor creates a processor whose workers each draw a base hasher
// from newHash.
func NewBatchProcessor(newHash func() hash.Hash) *BatchProcessor {
	return &BatchProcessor{
		maxWorkers: runtime.NumCPU(),
		hasherPool: sync.Pool{
			New: func() interface{} {
				return amt.NewHasher(newHash())
			},
		},
	}
}

// HashJob is a single node computation.
type HashJob struct {
	Left   amt.Digest
	Right  amt.Digest
	Result amt.Digest
}

// BatchHashNodes fills in the Result of every job.
func (bp *BatchProcessor) BatchHashNodes(jobs []*HashJob) {
	if len(jobs) == 0 {
		return
	}

	if len(jobs) <= serialThreshold {
		h := bp.hasherPool.Get().(*amt.Hasher)
		defer bp.hasherPool.Put(h)
		for _, job := range jobs {
			job.Result = h.HashNode(job.Left, job.Right)
		}
		return
	}

	jobChan := make(chan *HashJob, len(jobs))
	var wg sync.WaitGroup

	numWorkers := bp.maxWorkers
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := bp.hasherPool.Get().(*amt.Hasher)
			defer bp.hasherPool.Put(h)

			for job := range jobChan {
				job.Result = h.HashNode(job.Left, job.Right)
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	wg.Wait()
}

// HashLevel computes the level above level. Adjacent digests are paired from
// the left; an odd digest at the end is promoted unchanged.
func (bp *BatchProcessor) HashLevel(level []amt.Digest) []amt.Digest {
	jobs := make([]*HashJob, 0, len(level)/2)
	for i := 0; i+1 < len(level); i += 2 {
		jobs = append(jobs, &HashJob{Left: level[i], Right: level[i+1]})
	}
	bp.BatchHashNodes(jobs)

	next := make([]amt.Digest, 0, (len(level)+1)/2)
	for _, job := range jobs {
		next = append(next, job.Result)
	}
	if len(level)%2 == 1 {
		next = append(next, level[len(level)-1])
	}
	return next
}
