package catalog

// BuildTree converts flat, parent-referencing category rows into a nested
// tree and annotates every node with its recursive product count: the node's
// own direct associations plus those of all transitive descendants.
//
// Input ordering is preserved in the children lists, so callers feed rows
// ordered by (level, order_position, name). Rows whose parent is not present
// in the input are orphans and are silently excluded. Each row is attached
// at most once, which keeps the walk finite even if the rows are corrupt.
func BuildTree(rows []*Category, directCounts map[int64]int) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(rows))
	for _, row := range rows {
		if _, seen := nodes[row.ID]; seen {
			continue
		}
		nodes[row.ID] = &CategoryNode{Category: *row}
	}

	var roots []*CategoryNode
	attached := make(map[int64]bool, len(rows))
	for _, row := range rows {
		node := nodes[row.ID]
		if attached[row.ID] {
			continue
		}
		if row.ParentID == nil {
			roots = append(roots, node)
			attached[row.ID] = true
			continue
		}
		parent, ok := nodes[*row.ParentID]
		if !ok || *row.ParentID == row.ID {
			// orphan, or self-referencing corrupt row: drop it
			continue
		}
		parent.Children = append(parent.Children, node)
		attached[row.ID] = true
	}

	for _, root := range roots {
		sumCounts(root, directCounts)
	}

	return roots
}

// sumCounts fills ProductCount bottom-up. Safe to recurse: BuildTree attaches
// every node exactly once, so the structure is acyclic by construction.
func sumCounts(node *CategoryNode, directCounts map[int64]int) int {
	total := directCounts[node.ID]
	for _, child := range node.Children {
		total += sumCounts(child, directCounts)
	}
	node.ProductCount = total
	return total
}

// FindNode walks a built tree looking for the node with the given id.
func FindNode(roots []*CategoryNode, id int64) *CategoryNode {
	for _, root := range roots {
		if root.ID == id {
			return root
		}
		if found := FindNode(root.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// DirectChildren returns the child nodes of the given category as a flat
// list (children stripped), used by the parent_id listing. A nil parent
// yields the root nodes.
func DirectChildren(roots []*CategoryNode, parentID *int64) []*CategoryNode {
	source := roots
	if parentID != nil {
		parent := FindNode(roots, *parentID)
		if parent == nil {
			return nil
		}
		source = parent.Children
	}

	out := make([]*CategoryNode, 0, len(source))
	for _, node := range source {
		flat := &CategoryNode{Category: node.Category, ProductCount: node.ProductCount}
		out = append(out, flat)
	}
	return out
}
