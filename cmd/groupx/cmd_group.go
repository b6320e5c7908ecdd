package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/groupx/internal/production"
	"github.com/comalice/groupx/internal/subsets"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <group>",
		Short: "Summarize a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(args)
			if err != nil {
				return err
			}
			sum, err := s.Summary()
			if err != nil {
				return err
			}
			if ok, err := a.structured(cmd.OutOrStdout(), sum); ok {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.title(sum.Name)
			p.field("order", sum.Order)
			if sum.IsomorphicTo != "" && sum.IsomorphicTo != sum.Name {
				p.field("isomorphic to", sum.IsomorphicTo)
			}
			p.field("abelian", yesNo(sum.Abelian))
			p.field("solvable", sum.Solvable)
			p.field("simple", yesNo(sum.Simple))
			p.field("subgroups", sum.Subgroups)
			p.field("conjugacy classes", sum.ConjugacyClasses)
			p.field("generators", "⟨ "+strings.Join(sum.Generators, ", ")+" ⟩")
			return nil
		},
	}
}

func newSubgroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subgroups <group>",
		Short: "List subgroups with their library isomorphisms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(args)
			if err != nil {
				return err
			}
			reports, err := s.Subgroups()
			if err != nil {
				return err
			}
			if ok, err := a.structured(cmd.OutOrStdout(), reports); ok {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.title(fmt.Sprintf("%s: %d subgroups", s.Group().Name(), len(reports)))
			for _, r := range reports {
				line := fmt.Sprintf("%s = ⟨ %s ⟩ order %d", p.mark(r.Label), strings.Join(r.GeneratorNames, ", "), r.Order)
				if r.IsomorphicTo != "" {
					line += " ≅ " + r.IsomorphicTo
				}
				if r.Normal {
					line += ", normal"
					if r.QuotientIsomorphicTo != "" {
						line += ", quotient " + r.QuotientIsomorphicTo
					}
				}
				if r.Description != "" {
					line += " (" + r.Description + ")"
				}
				p.line("%s", line)
			}
			return nil
		},
	}
}

func newSolvableCmd(a *app) *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "solvable <group>",
		Short: "Decide solvability and show a decomposition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			p := newPrinter(out)

			if detailed {
				steps, err := s.DetailedDecomposition(ctx)
				if err != nil {
					return err
				}
				if ok, err := a.structured(out, steps); ok {
					return err
				}
				p.title("Detailed decomposition of " + s.Group().Name())
				p.line("%s", steps[0].Name)
				for i := 1; i < len(steps); i++ {
					p.line("%s", steps[i].Label(steps[i-1]))
				}
				return nil
			}

			r, err := s.SolvableReport(ctx)
			if err != nil {
				return err
			}
			if a.format == "dot" {
				if r.Decomposition == nil {
					return fmt.Errorf("%s has no decomposition to draw (%s)", r.Group, r.Verdict)
				}
				_, err := fmt.Fprint(out, production.DecompositionDOT(r.Decomposition))
				return err
			}
			if ok, err := a.structured(out, r); ok {
				return err
			}
			p.title(r.Group)
			p.field("verdict", r.Verdict)
			switch {
			case r.Decomposition != nil:
				p.field("decomposition", r.Decomposition.Chain())
				for _, l := range r.Decomposition.Links[1:] {
					if l.QuotientIsomorphicTo != "" {
						p.line("  %s / %s ≅ %s", l.DisplayName(), l.SubgroupIsomorphicTo, l.QuotientIsomorphicTo)
					}
				}
			case r.Error != "":
				p.field("error", r.Error)
			default:
				p.field("simple", yesNo(r.Simple))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "decompose through library groups with embeddings and quotient maps")
	return cmd
}

func newLatticeCmd(a *app) *cobra.Command {
	var highlight []int
	cmd := &cobra.Command{
		Use:   "lattice <group>",
		Short: "Show the subgroup lattice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(args)
			if err != nil {
				return err
			}
			l, err := s.Lattice(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.format == "dot" {
				dot, err := production.LatticeDOT(s.Group(), l, highlight...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, dot)
				return err
			}
			if ok, err := a.structured(out, l); ok {
				return err
			}
			p := newPrinter(out)
			p.title("Subgroup lattice of " + l.Group)
			for t := len(l.Tiers) - 1; t >= 0; t-- {
				names := make([]string, len(l.Tiers[t]))
				for i, h := range l.Tiers[t] {
					names[i] = fmt.Sprintf("H_%d", h)
				}
				p.line("%s", strings.Join(names, "  "))
			}
			for _, c := range l.Covers {
				p.line("  H_%d < H_%d", c.From, c.To)
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&highlight, "highlight", nil, "subgroup indices to highlight in dot output")
	return cmd
}

func newClassesCmd(a *app) *cobra.Command {
	var (
		byOrder bool
		cosets  int
		right   bool
	)
	cmd := &cobra.Command{
		Use:   "classes <group>",
		Short: "Partition a group into conjugacy classes, order classes or cosets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(args)
			if err != nil {
				return err
			}
			reg := s.Subsets()
			var part subsets.Partition
			switch {
			case cosets >= 0 && right:
				part, err = reg.RightCosets(cosets)
			case cosets >= 0:
				part, err = reg.LeftCosets(cosets)
			case byOrder:
				part = reg.OrderClasses()
			default:
				part = reg.ConjugacyClasses()
			}
			if err != nil {
				return err
			}

			members := make([]subsets.Entity, len(part.Members))
			for i, id := range part.Members {
				if members[i], err = reg.Get(id); err != nil {
					return err
				}
			}
			if ok, err := a.structured(cmd.OutOrStdout(), members); ok {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.title(fmt.Sprintf("%s: %s %s", s.Group().Name(), part.Kind, part.Name))
			for _, e := range members {
				label, err := reg.Label(e.ID)
				if err != nil {
					return err
				}
				p.line("%s", label)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&byOrder, "order", false, "partition by element order")
	f.IntVar(&cosets, "cosets", -1, "partition into cosets of the subgroup with this index")
	f.BoolVar(&right, "right", false, "use right cosets with --cosets")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
