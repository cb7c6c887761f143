// File: bfs.go
// Role: breadth-first connectivity diagnostics, adapted from lvlath/bfs.
// The original distinguishes weighted/unweighted graphs (BFS assumes unit
// edge cost); since our roadmap is always weighted, this adaptation ignores
// weight entirely and keeps only what the pathfinder actually needs:
// "are these two nodes in the same connected component" and "how many
// connected components does the mesh have" (an Orchestrator progress
// diagnostic). The context.Context + error-returning visit hook is kept
// verbatim as the cancellation mechanism (suspension points...
// between graph nodes").
package graph

import "context"

// VisitFunc is called once per node visited by BFS; returning an error
// aborts the traversal and that error propagates out of BFS.
type VisitFunc func(id string, depth int) error

// BFS runs a breadth-first traversal of g from start, calling visit (if
// non-nil) for every reachable node. It returns the set of reachable node
// IDs. ctx is checked once per dequeued node; a cancelled context aborts the
// traversal and returns ctx.Err().
func BFS(ctx context.Context, g *Graph, start string, visit VisitFunc) (map[string]bool, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasNode(start) {
		return nil, ErrNodeNotFound
	}

	visited := map[string]bool{start: true}
	queue := []struct {
		id    string
		depth int
	}{{start, 0}}

	for len(queue) > 0 {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return visited, ctx.Err()
			default:
			}
		}

		cur := queue[0]
		queue = queue[1:]

		if visit != nil {
			if err := visit(cur.id, cur.depth); err != nil {
				return visited, err
			}
		}

		neighbors, err := g.Neighbors(cur.id)
		if err != nil {
			return visited, err
		}
		for _, e := range neighbors {
			next := e.To
			if next == cur.id {
				next = e.From
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, struct {
					id    string
					depth int
				}{next, cur.depth + 1})
			}
		}
	}

	return visited, nil
}

// Connected reports whether b is reachable from a in g.
func Connected(ctx context.Context, g *Graph, a, b string) (bool, error) {
	reached, err := BFS(ctx, g, a, nil)
	if err != nil {
		return false, err
	}
	return reached[b], nil
}

// ConnectedComponents partitions every node of g into connected components
// and returns their count, used by the Orchestrator as a mesh-health
// diagnostic (this progress reporting).
func ConnectedComponents(g *Graph) (int, error) {
	seen := make(map[string]bool)
	count := 0
	for _, n := range g.Nodes() {
		if seen[n.ID] {
			continue
		}
		reached, err := BFS(context.Background(), g, n.ID, nil)
		if err != nil {
			return 0, err
		}
		for id := range reached {
			seen[id] = true
		}
		count++
	}
	return count, nil
}
