package workspace

import "fmt"

// graph is an adjacency list keeping node and edge insertion order, so
// the topological order is deterministic for a given discovery order.
type graph struct {
	nodes []string
	known map[string]bool
	edges map[string][]string
	seen  map[[2]string]bool
}

func newGraph() *graph {
	return &graph{
		known: make(map[string]bool),
		edges: make(map[string][]string),
		seen:  make(map[[2]string]bool),
	}
}

func (g *graph) addNode(name string) {
	if g.known[name] {
		return
	}
	g.known[name] = true
	g.nodes = append(g.nodes, name)
}

// addEdge records that from depends on to. Repeated edges are ignored.
func (g *graph) addEdge(from, to string) error {
	if !g.known[from] {
		return fmt.Errorf("source node %s does not exist", from)
	}
	if !g.known[to] {
		return fmt.Errorf("destination node %s does not exist", to)
	}

	key := [2]string{from, to}
	if g.seen[key] {
		return nil
	}
	g.seen[key] = true
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// topologicalSort returns the nodes with every node after the nodes it
// depends on (DFS post-order).
func (g *graph) topologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	order := make([]string, 0, len(g.nodes))
	var stack []string

	var visit func(string) error
	visit = func(node string) error {
		if temp[node] {
			return &CyclicDependencyError{Cycle: cyclePath(stack, node)}
		}
		if visited[node] {
			return nil
		}
		temp[node] = true
		stack = append(stack, node)

		for _, dep := range g.edges[node] {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		temp[node] = false
		visited[node] = true
		order = append(order, node)
		return nil
	}

	for _, node := range g.nodes {
		if !visited[node] {
			if err := visit(node); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func cyclePath(stack []string, node string) []string {
	for i, name := range stack {
		if name == node {
			path := append([]string{}, stack[i:]...)
			return append(path, node)
		}
	}
	return []string{node, node}
}

// targets returns the direct dependencies of node.
func (g *graph) targets(node string) []string {
	return append([]string{}, g.edges[node]...)
}

// sources returns the nodes depending directly on node, in node order.
func (g *graph) sources(node string) []string {
	var out []string
	for _, from := range g.nodes {
		if g.seen[[2]string{from, node}] {
			out = append(out, from)
		}
	}
	return out
}
