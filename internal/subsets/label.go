package subsets

import (
	"fmt"
	"strings"

	"github.com/comalice/groupx/internal/bitset"
)

const shownElements = 3

// ElementNames returns the names of the first three elements of id,
// followed by "..." when there are more.
func (r *Registry) ElementNames(id int) ([]string, error) {
	e, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, shownElements+1)
	for x := range e.Elements.All() {
		if len(names) == shownElements {
			names = append(names, "...")
			break
		}
		names = append(names, r.group.ElementName(x))
	}
	return names, nil
}

// Label returns the one-line description of id shown in a subset list.
func (r *Registry) Label(id int) (string, error) {
	e, err := r.Get(id)
	if err != nil {
		return "", err
	}
	names, _ := r.ElementNames(id)
	list := "{ " + strings.Join(names, ", ") + " }"
	g := r.group

	switch e.Kind {
	case KindSubgroup:
		gens := "⟨ " + strings.Join(g.ElementNames(r.generators(e.Subgroup)), ", ") + " ⟩"
		switch {
		case e.Elements.Count() == 1:
			return fmt.Sprintf("%s = %s is the trivial subgroup.", e.Name, gens), nil
		case e.Elements.Count() == g.Order():
			return fmt.Sprintf("%s = %s is the group itself.", e.Name, gens), nil
		}
		return fmt.Sprintf("%s = %s is a subgroup of order %d.", e.Name, gens, e.Elements.Count()), nil
	case KindSubset:
		return fmt.Sprintf("%s = %s is a subset of size %d.", e.Name, list, e.Elements.Count()), nil
	case KindConjugacyClass:
		return fmt.Sprintf("%s = %s is a conjugacy class of size %d.", e.Name, list, e.Elements.Count()), nil
	case KindOrderClass:
		return fmt.Sprintf("%s = %s is the set of all elements of order %d.", e.Name, list, g.ElementOrder(e.Elements.First())), nil
	case KindLeftCoset:
		return fmt.Sprintf("%s = %s is a left coset of H_%d.", e.Name, list, e.Subgroup), nil
	case KindRightCoset:
		return fmt.Sprintf("%s = %s is a right coset of H_%d.", e.Name, list, e.Subgroup), nil
	}
	return e.Name, nil
}

func (r *Registry) generators(subgroup int) bitset.BitSet {
	s, err := r.group.Subgroup(subgroup)
	if err != nil {
		return bitset.New(r.group.Order())
	}
	return s.Generators
}
