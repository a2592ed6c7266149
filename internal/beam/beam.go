// Package beam implements the iterative beam search driver: for a growing
// queue size, expand the best node repeatedly, keep only the queue's
// best-scoring survivors (pruned for dominance), and stop growing once a
// leaf is found or the queue size exceeds the configured maximum. Multiple
// (guide, first-stage orientation) configurations run as independent
// workers joined by golang.org/x/sync/errgroup; across workers the result
// with the highest profit wins, ties going to fewer bins, then less waste.
package beam

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/guide"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Config tunes the search.
type Config struct {
	Discipline       branching.Discipline
	Guides           []guide.ID
	Orientations     []geom.CutOrientation
	InitialQueueSize int
	GrowthFactor     float64
	MaxQueueSize     int
	TimeLimit        time.Duration
}

// DefaultConfig runs every guide against every orientation with a modest
// queue that grows geometrically, a common configuration for small to
// medium instances.
func DefaultConfig() Config {
	guides := make([]guide.ID, guide.Count)
	for i := range guides {
		guides[i] = guide.ID(i)
	}
	return Config{
		Discipline:       branching.Staged,
		Guides:           guides,
		Orientations:     []geom.CutOrientation{geom.Vertical, geom.Horizontal},
		InitialQueueSize: 1,
		GrowthFactor:     1.5,
		MaxQueueSize:     10_000,
		TimeLimit:        30 * time.Second,
	}
}

// Result is the best node any worker reached, together with the scheme
// that produced it (needed to walk its parent chain and instance).
type Result struct {
	Scheme      *branching.Scheme
	Node        *branching.Node
	Guide       guide.ID
	Orientation geom.CutOrientation
	Nodes       int64
}

// Run launches one worker per (guide, orientation) pair in cfg and
// returns the best-profit result across all of them. It returns an error
// only if ctx is canceled or its deadline expires before any worker
// produces a result.
func Run(ctx context.Context, inst *instance.Instance, cfg Config) (*Result, error) {
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*Result, 0, len(cfg.Guides)*len(cfg.Orientations))
	resultsCh := make(chan *Result, len(cfg.Guides)*len(cfg.Orientations))

	for _, gd := range cfg.Guides {
		for _, o := range cfg.Orientations {
			gd, o := gd, o
			g.Go(func() error {
				r := runWorker(ctx, inst, cfg, gd, o)
				resultsCh <- r
				return nil
			})
		}
	}

	err := g.Wait()
	close(resultsCh)
	for r := range resultsCh {
		if r != nil {
			results = append(results, r)
		}
	}
	if err != nil && len(results) == 0 {
		return nil, err
	}

	best := bestResult(results)
	if best == nil {
		return nil, ctx.Err()
	}
	return best, nil
}

func bestResult(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if r == nil || r.Node == nil {
			continue
		}
		if best == nil || better(r, best) {
			best = r
		}
	}
	return best
}

func better(a, b *Result) bool {
	if a.Node.Profit != b.Node.Profit {
		return a.Node.Profit > b.Node.Profit
	}
	if a.Node.NumberOfBins() != b.Node.NumberOfBins() {
		return a.Node.NumberOfBins() < b.Node.NumberOfBins()
	}
	return a.Node.Waste < b.Node.Waste
}

// runWorker performs one iterative-beam-search run: starting from a queue
// size of cfg.InitialQueueSize, it repeatedly expands the queue's best
// node, keeps the queue's best cfg's-many survivors (pruning dominated
// nodes), and on exhausting a queue without reaching a leaf, multiplies
// the queue size by cfg.GrowthFactor (rounding up, and growing by at least
// one) and restarts from the root.
func runWorker(ctx context.Context, inst *instance.Instance, cfg Config, gd guide.ID, o geom.CutOrientation) *Result {
	scheme := branching.NewScheme(inst, branching.Parameters{
		Discipline:            cfg.Discipline,
		FirstStageOrientation: o,
	})

	var best *branching.Node
	var nodes int64
	queueSize := cfg.InitialQueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	for queueSize <= cfg.MaxQueueSize {
		select {
		case <-ctx.Done():
			return &Result{Scheme: scheme, Node: best, Guide: gd, Orientation: o, Nodes: nodes}
		default:
		}

		leaf, leafFound, n := iterate(ctx, scheme, inst, gd, queueSize)
		nodes += n
		if leafFound && (best == nil || leaf.Profit > best.Profit) {
			best = leaf
		}
		if leafFound {
			break
		}
		next := int(math.Ceil(float64(queueSize) * cfg.GrowthFactor))
		if next <= queueSize {
			next = queueSize + 1
		}
		queueSize = next
	}

	return &Result{Scheme: scheme, Node: best, Guide: gd, Orientation: o, Nodes: nodes}
}

// iterate runs a single bounded beam search pass with the given queue
// size, returning the best leaf reached (if any) and the node count
// expanded.
func iterate(ctx context.Context, scheme *branching.Scheme, inst *instance.Instance, gd guide.ID, queueSize int) (*branching.Node, bool, int64) {
	queue := []*branching.Node{scheme.Root()}
	var nodes int64
	var bestLeaf *branching.Node
	leafFound := false

	buckets := map[bucketKey][]*branching.Node{}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return bestLeaf, leafFound, nodes
		default:
		}

		sort.Slice(queue, func(i, j int) bool { return guide.Less(inst, gd, queue[i], queue[j]) })
		if len(queue) > queueSize {
			queue = queue[:queueSize]
		}

		var next []*branching.Node
		for _, node := range queue {
			nodes++
			if scheme.Leaf(node) {
				if !leafFound || node.Profit > bestLeaf.Profit {
					bestLeaf = node
					leafFound = true
				}
				continue
			}
			for _, ins := range scheme.Insertions(node) {
				child := scheme.Child(node, ins)
				if !scheme.Valid(child) {
					continue
				}
				if dominated(scheme, buckets, child) {
					continue
				}
				next = append(next, child)
			}
		}
		queue = next
	}

	return bestLeaf, leafFound, nodes
}

// bucketKey groups nodes that could plausibly dominate one another: same
// bin index and first-stage orientation. Dominates itself also compares
// item count, waste, remaining copies and stack positions before the
// geometric front comparison.
type bucketKey struct {
	binIndex    int
	orientation geom.CutOrientation
}

// dominated reports whether child is dominated by any node already kept
// in its bucket, and if not, adds it to the bucket (evicting any nodes
// child itself dominates).
func dominated(scheme *branching.Scheme, buckets map[bucketKey][]*branching.Node, child *branching.Node) bool {
	key := bucketKey{binIndex: child.BinIndex, orientation: child.FirstStageOrientation}
	bucket := buckets[key]

	survivors := bucket[:0]
	for _, other := range bucket {
		if scheme.Dominates(other, child) {
			return true
		}
		if !scheme.Dominates(child, other) {
			survivors = append(survivors, other)
		}
	}
	survivors = append(survivors, child)
	buckets[key] = survivors
	return false
}
