package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/production"
)

type libraryEntry struct {
	Name     string `json:"name" yaml:"name"`
	Order    int    `json:"order" yaml:"order"`
	Abelian  bool   `json:"abelian" yaml:"abelian"`
	Solvable bool   `json:"solvable" yaml:"solvable"`
}

func newLibraryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect the reference library",
	}
	cmd.AddCommand(newLibraryListCmd(a), newLibraryExportCmd(a))
	return cmd
}

func newLibraryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the library groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := a.explorer.Library().Groups()
			entries := make([]libraryEntry, len(groups))
			for i, g := range groups {
				entries[i] = libraryEntry{Name: g.Name(), Order: g.Order(), Abelian: g.IsAbelian(), Solvable: g.IsSolvable()}
			}
			if ok, err := a.structured(cmd.OutOrStdout(), entries); ok {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.title(fmt.Sprintf("%d library groups", len(entries)))
			for _, e := range entries {
				p.line("%-16s order %-4d%s", e.Name, e.Order, traits(e))
			}
			return nil
		},
	}
}

func traits(e libraryEntry) string {
	switch {
	case e.Abelian:
		return " abelian"
	case e.Solvable:
		return " solvable"
	}
	return ""
}

func newLibraryExportCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every library definition to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				store production.DefinitionStore
				err   error
			)
			if asJSON {
				store, err = production.NewJSONStore(args[0])
			} else {
				store, err = production.NewYAMLStore(args[0])
			}
			if err != nil {
				return err
			}
			groups := a.explorer.Library().Groups()
			for _, g := range groups {
				if err := store.Save(cmd.Context(), g.Definition()); err != nil {
					return fmt.Errorf("export %s: %w", g.Name(), err)
				}
			}
			a.logger.Info("library exported", zap.String("dir", args[0]), zap.Int("groups", len(groups)))
			newPrinter(cmd.OutOrStdout()).line("exported %d definitions to %s", len(groups), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of YAML")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Summarize definition files as they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := production.NewDefinitionWatcher(args[0], debounce, a.logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := w.Start(ctx); err != nil {
				_ = w.Close()
				return err
			}
			defer w.Stop()

			p := newPrinter(cmd.OutOrStdout())
			for {
				select {
				case <-ctx.Done():
					stats := w.Stats()
					a.logger.Info("watch stopped",
						zap.Int("reloads", stats.Reloads),
						zap.Int("removals", stats.Removals),
						zap.Int("errors", stats.Errors),
					)
					return nil
				case r, ok := <-w.Reloads():
					if !ok {
						return nil
					}
					a.report(p, r)
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before a changed file is reloaded")
	return cmd
}

func (a *app) report(p *printer, r production.Reload) {
	switch {
	case r.Removed:
		p.line("%s removed", r.Path)
	case r.Err != nil:
		p.line("%s: %s", r.Path, p.render(errorStyle, r.Err.Error()))
	default:
		s, err := a.explorer.Open(r.Definition)
		if err != nil {
			p.line("%s: %s", r.Path, p.render(errorStyle, err.Error()))
			return
		}
		sum, err := s.Summary()
		if err != nil {
			p.line("%s: %s", r.Path, p.render(errorStyle, err.Error()))
			return
		}
		p.line("%s: %s order %d, %s, solvable %s", r.Path, p.mark(sum.Name), sum.Order, sum.Subgroups, sum.Solvable)
	}
}
