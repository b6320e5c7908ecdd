// Package subsets keeps the named subsets a user builds while exploring a
// group: its subgroups, free-form subsets, and the members of partitions
// such as conjugacy classes, order classes and cosets.
//
// Every entity gets a stable id that is never reused. Set operations always
// register a new subset; nothing is modified in place.
package subsets

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
)

var (
	ErrNotFound    = errors.New("subset not found")
	ErrNotSubgroup = errors.New("subset is not a subgroup")
	ErrOutOfRange  = errors.New("element out of range")
)

// Kind classifies an entity.
type Kind int

const (
	KindSubgroup Kind = iota
	KindSubset
	KindConjugacyClass
	KindOrderClass
	KindLeftCoset
	KindRightCoset
)

func (k Kind) String() string {
	switch k {
	case KindSubgroup:
		return "subgroup"
	case KindSubset:
		return "subset"
	case KindConjugacyClass:
		return "conjugacy class"
	case KindOrderClass:
		return "order class"
	case KindLeftCoset:
		return "left coset"
	case KindRightCoset:
		return "right coset"
	}
	return "unknown"
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Entity is one registered subset.
type Entity struct {
	ID       int           `json:"id" yaml:"id"`
	Kind     Kind          `json:"kind" yaml:"kind"`
	Name     string        `json:"name" yaml:"name"`
	Elements bitset.BitSet `json:"elements" yaml:"elements"`
	// Index is the subgroup index for subgroups, the running subset number
	// for subsets, and the position inside the partition otherwise.
	Index int `json:"index" yaml:"index"`
	// Subgroup is the subgroup index of a subgroup or coset, else -1.
	Subgroup int `json:"subgroup" yaml:"subgroup"`
	// Partition is the owning partition id, or -1.
	Partition int `json:"partition" yaml:"partition"`
}

// Partition groups the entities produced by one partitioning command.
type Partition struct {
	ID       int    `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
	Subgroup int    `json:"subgroup" yaml:"subgroup"`
	Members  []int  `json:"members" yaml:"members"`
}

// Option configures a Registry.
type Option func(*Registry)

// WithPublisher sends every change to p.
func WithPublisher(p Publisher) Option {
	return func(r *Registry) { r.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry holds the entities of one group. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	group      *core.Group
	entities   map[int]*Entity
	partitions map[int]*Partition
	nextID     int
	nextSubset int

	publisher Publisher
	logger    *zap.Logger
}

// New creates a registry for g and registers every subgroup as H_i.
func New(g *core.Group, opts ...Option) (*Registry, error) {
	subgroups, err := g.Subgroups()
	if err != nil {
		return nil, err
	}
	r := &Registry{
		group:      g,
		entities:   make(map[int]*Entity),
		partitions: make(map[int]*Partition),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	changes := make([]Change, 0, len(subgroups))
	for _, s := range subgroups {
		e := r.add(Entity{
			Kind:      KindSubgroup,
			Name:      fmt.Sprintf("H_%d", s.Index),
			Elements:  s.Members,
			Index:     s.Index,
			Subgroup:  s.Index,
			Partition: -1,
		})
		changes = append(changes, Change{Type: Added, Entity: e})
	}
	r.publish(changes)
	return r, nil
}

// Group returns the group the registry belongs to.
func (r *Registry) Group() *core.Group { return r.group }

// add registers e under a fresh id. Callers hold the write lock or own r
// exclusively.
func (r *Registry) add(e Entity) Entity {
	e.ID = r.nextID
	r.nextID++
	r.entities[e.ID] = &e
	return e
}

func (r *Registry) get(id int) (*Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// Get returns the entity with the given id.
func (r *Registry) Get(id int) (Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.get(id)
	if err != nil {
		return Entity{}, err
	}
	return *e, nil
}

// Entities returns every live entity ordered by id.
func (r *Registry) Entities() []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Entity) int { return a.ID - b.ID })
	return out
}

// Others returns every live entity except id, ordered by id. It lists the
// operands available to a binary operation on id.
func (r *Registry) Others(id int) []Entity {
	all := r.Entities()
	return slices.DeleteFunc(all, func(e Entity) bool { return e.ID == id })
}

// Partitions returns every live partition ordered by id.
func (r *Registry) Partitions() []Partition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Partition, 0, len(r.partitions))
	for _, p := range r.partitions {
		cp := *p
		cp.Members = slices.Clone(p.Members)
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b Partition) int { return a.ID - b.ID })
	return out
}

// NewSubset registers the given elements as a new subset S_k.
func (r *Registry) NewSubset(elements ...int) (Entity, error) {
	order := r.group.Order()
	set := bitset.New(order)
	for _, e := range elements {
		if e < 0 || e >= order {
			return Entity{}, fmt.Errorf("element %d of %s: %w", e, r.group.Name(), ErrOutOfRange)
		}
		set.Set(e)
	}
	return r.newSubset(set), nil
}

func (r *Registry) newSubset(set bitset.BitSet) Entity {
	r.mu.Lock()
	e := r.add(Entity{
		Kind:      KindSubset,
		Name:      fmt.Sprintf("S_%d", r.nextSubset),
		Elements:  set,
		Index:     r.nextSubset,
		Subgroup:  -1,
		Partition: -1,
	})
	r.nextSubset++
	r.mu.Unlock()

	r.publish([]Change{{Type: Added, Entity: e}})
	return e
}

// derive applies f to the elements of the operands and registers the
// result as a new subset.
func (r *Registry) derive(f func(sets ...bitset.BitSet) bitset.BitSet, ids ...int) (Entity, error) {
	r.mu.RLock()
	sets := make([]bitset.BitSet, len(ids))
	for i, id := range ids {
		e, err := r.get(id)
		if err != nil {
			r.mu.RUnlock()
			return Entity{}, err
		}
		sets[i] = e.Elements
	}
	r.mu.RUnlock()
	return r.newSubset(f(sets...)), nil
}

// Union registers a ∪ b.
func (r *Registry) Union(a, b int) (Entity, error) {
	return r.derive(func(s ...bitset.BitSet) bitset.BitSet { return bitset.Union(s[0], s[1]) }, a, b)
}

// Intersection registers a ∩ b.
func (r *Registry) Intersection(a, b int) (Entity, error) {
	return r.derive(func(s ...bitset.BitSet) bitset.BitSet { return bitset.Intersection(s[0], s[1]) }, a, b)
}

// ElementwiseProduct registers {x·y : x ∈ a, y ∈ b}.
func (r *Registry) ElementwiseProduct(a, b int) (Entity, error) {
	return r.derive(func(s ...bitset.BitSet) bitset.BitSet { return r.group.Product(s[0], s[1]) }, a, b)
}

// Closure registers the subgroup generated by id.
func (r *Registry) Closure(id int) (Entity, error) {
	return r.derive(func(s ...bitset.BitSet) bitset.BitSet { return r.group.Closure(s[0]) }, id)
}

// Normalizer registers the normalizer of the subgroup id.
func (r *Registry) Normalizer(id int) (Entity, error) {
	if _, err := r.subgroup(id); err != nil {
		return Entity{}, err
	}
	return r.derive(func(s ...bitset.BitSet) bitset.BitSet { return r.group.Normalizer(s[0]) }, id)
}

func (r *Registry) subgroup(id int) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if e.Kind != KindSubgroup {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrNotSubgroup)
	}
	return e, nil
}

// Destroy removes one entity. Removing the last member of a partition
// removes the partition too.
func (r *Registry) Destroy(id int) error {
	r.mu.Lock()
	e, err := r.get(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	delete(r.entities, id)
	if p, ok := r.partitions[e.Partition]; ok {
		p.Members = slices.DeleteFunc(p.Members, func(m int) bool { return m == id })
		if len(p.Members) == 0 {
			delete(r.partitions, p.ID)
		}
	}
	removed := *e
	r.mu.Unlock()

	r.publish([]Change{{Type: Removed, Entity: removed}})
	return nil
}

// DestroyPartition removes a partition and all of its remaining members.
func (r *Registry) DestroyPartition(id int) error {
	r.mu.Lock()
	p, ok := r.partitions[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("partition %d: %w", id, ErrNotFound)
	}
	delete(r.partitions, id)
	changes := make([]Change, 0, len(p.Members))
	for _, m := range p.Members {
		if e, ok := r.entities[m]; ok {
			changes = append(changes, Change{Type: Removed, Entity: *e})
			delete(r.entities, m)
		}
	}
	r.mu.Unlock()

	r.publish(changes)
	return nil
}

func (r *Registry) publish(changes []Change) {
	if r.publisher == nil {
		return
	}
	for _, c := range changes {
		if err := r.publisher.Publish(c); err != nil {
			r.logger.Warn("subset change not published",
				zap.String("change", string(c.Type)),
				zap.String("subset", c.Entity.Name),
				zap.Error(err),
			)
		}
	}
}
