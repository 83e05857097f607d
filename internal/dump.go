package internal

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Dependencies returns the values read by the node's action during its last run.
func (n *Node) Dependencies() []*Node {
	if n.owner == nil {
		return nil
	}

	return slices.Collect(n.owner.Inputs())
}

// Dependents returns the outputs of every action that read the node.
func (n *Node) Dependents() []*Node {
	var dependents []*Node
	seen := make(map[*Node]bool)

	for link := n.subsHead; link != nil; link = link.nextSub {
		for _, output := range link.action.outputs {
			if !seen[output] {
				seen[output] = true
				dependents = append(dependents, output)
			}
		}
	}

	return dependents
}

func (n *Node) AllDependencies() []*Node {
	return walk(n, (*Node).Dependencies)
}

func (n *Node) AllDependents() []*Node {
	return walk(n, (*Node).Dependents)
}

// walk collects everything reachable from start, breadth-first, without start itself.
func walk(start *Node, next func(*Node) []*Node) []*Node {
	var out []*Node
	visited := map[*Node]bool{start: true}
	queue := []*Node{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range next(current) {
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, n)
			queue = append(queue, n)
		}
	}

	return out
}

// Dump writes the node and its dependencies, one per line, indented by depth.
// A node reached a second time is printed with a trailing "..." and not expanded again.
func (n *Node) Dump(w io.Writer, indent int) error {
	return n.dump(w, indent, make(map[*Node]bool))
}

func (n *Node) dump(w io.Writer, indent int, visited map[*Node]bool) error {
	line := strings.Repeat("  ", indent) + n.describe()

	if visited[n] {
		_, err := fmt.Fprintln(w, line, "...")
		return err
	}
	visited[n] = true

	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, dep := range n.Dependencies() {
		if err := dep.dump(w, indent+1, visited); err != nil {
			return err
		}
	}

	return nil
}

func (n *Node) describe() string {
	s := fmt.Sprintf("%s <%s> %s", n.name, n.storage.TypeName(), n.State())

	if n.owner != nil && n.owner.name != n.name {
		s += " by " + n.owner.name
	}

	return s
}
