package internal

// Link is the record that an action read a value during its last run.
// It is a member of two lists at once: the value's dependents and the action's inputs.
type Link struct {
	value  *Node
	action *Action

	prevSub *Link
	nextSub *Link

	prevDep *Link
	nextDep *Link
}

func (n *Node) addSubLink(link *Link) {
	link.prevSub = nil
	link.nextSub = n.subsHead
	if n.subsHead != nil {
		n.subsHead.prevSub = link
	}
	n.subsHead = link
}

func (n *Node) removeSubLink(link *Link) {
	if link.prevSub != nil {
		link.prevSub.nextSub = link.nextSub
	} else {
		n.subsHead = link.nextSub
	}

	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
}

func (a *Action) addDepLink(link *Link) {
	if a.depsHead == nil {
		a.depsHead = link
		link.prevDep = nil
	} else {
		a.depsTail.nextDep = link
		link.prevDep = a.depsTail
	}
	link.nextDep = nil
	a.depsTail = link
}

func (a *Action) removeDepLink(link *Link) {
	if link.prevDep != nil {
		link.prevDep.nextDep = link.nextDep
	} else {
		a.depsHead = link.nextDep
	}

	if link.nextDep != nil {
		link.nextDep.prevDep = link.prevDep
	} else {
		a.depsTail = link.prevDep
	}

	link.prevDep = nil
	link.nextDep = nil
	delete(a.inputs, link.value)
}
