package engine

// keymap is a trie of key notations. A node may hold a command and children
// at once, which is what makes a sequence ambiguous.
type keymap struct {
	root *node
}

type node struct {
	cmd      *Command
	children map[string]*node
}

func newKeymap() *keymap {
	return &keymap{root: &node{}}
}

func (k *keymap) bind(seq []string, cmd *Command) {
	n := k.root
	for _, key := range seq {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[key]
		if !ok {
			child = &node{}
			n.children[key] = child
		}
		n = child
	}
	n.cmd = cmd
}

func (k *keymap) find(seq []string) *node {
	n := k.root
	for _, key := range seq {
		n = n.children[key]
		if n == nil {
			return nil
		}
	}
	return n
}

// lookup returns the command bound to exactly seq, if any, and whether a
// longer sequence starts with seq.
func (k *keymap) lookup(seq []string) (cmd *Command, longer bool) {
	n := k.find(seq)
	if n == nil {
		return nil, false
	}
	return n.cmd, len(n.children) > 0
}

// longest returns the command bound to the longest prefix of seq and the
// length of that prefix.
func (k *keymap) longest(seq []string) (*Command, int) {
	var (
		best  *Command
		bestN int
	)
	n := k.root
	for i, key := range seq {
		n = n.children[key]
		if n == nil {
			break
		}
		if n.cmd != nil {
			best, bestN = n.cmd, i+1
		}
	}
	return best, bestN
}
