package tree

import (
	"context"
	"fmt"
)

/*
Equal takes a context and two trees and returns whether both have the same
structure: the same label, and nodes with the same attributes, criteria and
labels arranged in the same order. Node IDs are not compared, so a tree
decoded from a format that does not persist them equals the original.
An error is returned if the nodes of either tree cannot be retrieved.
*/
func Equal(ctx context.Context, a, b *Tree) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.Label != b.Label {
		return false, nil
	}
	an, err := a.Root(ctx)
	if err != nil {
		return false, err
	}
	bn, err := b.Root(ctx)
	if err != nil {
		return false, err
	}
	return equalNodes(ctx, a, an, b, bn)
}

func equalNodes(ctx context.Context, a *Tree, an *Node, b *Tree, bn *Node) (bool, error) {
	if an.Attribute != bn.Attribute || an.Label != bn.Label || an.Unlabeled != bn.Unlabeled {
		return false, nil
	}
	if (an.Criterion == nil) != (bn.Criterion == nil) {
		return false, nil
	}
	if an.Criterion != nil && *an.Criterion != *bn.Criterion {
		return false, nil
	}
	if len(an.SubtreeIDs) != len(bn.SubtreeIDs) {
		return false, nil
	}
	for i := range an.SubtreeIDs {
		ac, err := a.getNode(ctx, an.SubtreeIDs[i])
		if err != nil {
			return false, fmt.Errorf("comparing trees: %v", err)
		}
		bc, err := b.getNode(ctx, bn.SubtreeIDs[i])
		if err != nil {
			return false, fmt.Errorf("comparing trees: %v", err)
		}
		ok, err := equalNodes(ctx, a, ac, b, bc)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}
