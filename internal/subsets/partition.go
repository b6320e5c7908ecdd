package subsets

import (
	"fmt"

	"github.com/comalice/groupx/internal/bitset"
)

// ConjugacyClasses registers the conjugacy classes as CC_0, CC_1, ...
func (r *Registry) ConjugacyClasses() Partition {
	classes := r.group.ConjugacyClasses()
	names := make([]string, len(classes))
	for i := range classes {
		names[i] = fmt.Sprintf("CC_%d", i)
	}
	return r.partition(KindConjugacyClass, -1, classes, names)
}

// OrderClasses registers the non-empty order classes as OC_0, OC_1, ...
// numbered after empty classes are skipped.
func (r *Registry) OrderClasses() Partition {
	var classes []bitset.BitSet
	var names []string
	for _, c := range r.group.OrderClasses() {
		if c.Empty() {
			continue
		}
		names = append(names, fmt.Sprintf("OC_%d", len(classes)))
		classes = append(classes, c)
	}
	return r.partition(KindOrderClass, -1, classes, names)
}

// LeftCosets registers the left cosets xH of subgroup entity id, each named
// after its smallest member.
func (r *Registry) LeftCosets(id int) (Partition, error) {
	return r.cosets(id, true)
}

// RightCosets registers the right cosets Hx of subgroup entity id.
func (r *Registry) RightCosets(id int) (Partition, error) {
	return r.cosets(id, false)
}

func (r *Registry) cosets(id int, left bool) (Partition, error) {
	h, err := r.subgroup(id)
	if err != nil {
		return Partition{}, err
	}
	cosets := r.group.Cosets(h.Elements, left)
	names := make([]string, len(cosets))
	for i, c := range cosets {
		rep := r.group.ElementName(c.First())
		if left {
			names[i] = rep + h.Name
		} else {
			names[i] = h.Name + rep
		}
	}
	kind := KindRightCoset
	if left {
		kind = KindLeftCoset
	}
	return r.partition(kind, h.Subgroup, cosets, names), nil
}

func (r *Registry) partition(kind Kind, subgroup int, sets []bitset.BitSet, names []string) Partition {
	r.mu.Lock()
	p := &Partition{ID: r.nextID, Kind: kind, Subgroup: subgroup}
	r.nextID++
	changes := make([]Change, 0, len(sets))
	for i, s := range sets {
		e := r.add(Entity{
			Kind:      kind,
			Name:      names[i],
			Elements:  s,
			Index:     i,
			Subgroup:  subgroup,
			Partition: p.ID,
		})
		p.Members = append(p.Members, e.ID)
		changes = append(changes, Change{Type: Added, Entity: e})
	}
	if len(names) > 0 {
		p.Name = fmt.Sprintf("{ %s ... %s }", names[0], names[len(names)-1])
	}
	r.partitions[p.ID] = p
	out := *p
	out.Members = append([]int(nil), p.Members...)
	r.mu.Unlock()

	r.publish(changes)
	return out
}

// Showing reports whether a partition of the given kind is live. For
// cosets, subgroup selects the subgroup index; it is ignored otherwise.
func (r *Registry) Showing(kind Kind, subgroup int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.partitions {
		if p.Kind != kind {
			continue
		}
		if (kind == KindLeftCoset || kind == KindRightCoset) && p.Subgroup != subgroup {
			continue
		}
		return true
	}
	return false
}
