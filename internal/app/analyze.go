package app

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/ui/output"
	"go.trai.ch/lcr/internal/ui/style"
)

// Analyze extracts and prints the code features of a source file.
func (a *App) Analyze(ctx context.Context, path string, opts OutputOptions) error {
	feature, err := a.extract(ctx, path)
	if err != nil {
		return err
	}
	if opts.JSON {
		return a.writeJSON(feature)
	}

	year := feature.ValidationYear
	if year == "" {
		year = "-"
	}
	fmt.Fprintln(a.stdout, style.Heading.Render(path))
	return output.Table(a.stdout, nil, [][]string{
		{style.Label.Render("version"), feature.VersionHint},
		{style.Label.Render("evidence"), feature.Evidence},
		{style.Label.Render("imports"), joinOrDash(feature.Imports)},
		{style.Label.Render("keywords"), joinOrDash(feature.Keywords)},
		{style.Label.Render("year"), year},
	})
}

// Resolve maps the imports of a source file to installable packages.
func (a *App) Resolve(ctx context.Context, path string, opts OutputOptions) error {
	feature, err := a.extract(ctx, path)
	if err != nil {
		return err
	}
	res, err := a.resolver.Resolve(ctx, feature.Imports)
	if err != nil {
		return err
	}
	if opts.JSON {
		return a.writeJSON(res)
	}

	if err := output.Table(a.stdout, nil, [][]string{
		{style.Label.Render("pip"), joinOrDash(res.Pip)},
		{style.Label.Render("apt"), joinOrDash(res.Apt)},
		{style.Label.Render("unresolved"), joinOrDash(res.Unresolved)},
	}); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout)
	rows := make([][]string, 0, len(res.Reasons))
	for _, name := range slices.Sorted(maps.Keys(res.Reasons)) {
		rows = append(rows, []string{name, res.Reasons[name]})
	}
	return output.Table(a.stdout, []string{"IMPORT", "REASON"}, rows)
}

// Runtimes lists the active image rules.
func (a *App) Runtimes(opts OutputOptions) error {
	rules := a.rules.All()
	if opts.JSON {
		return a.writeJSON(rules)
	}

	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{r.ID, r.Name, r.Version, r.Image})
	}
	return output.Table(a.stdout, []string{"ID", "NAME", "VERSION", "IMAGE"}, rows)
}

// Select scores the active rules against a source file and prints the winner.
func (a *App) Select(ctx context.Context, path string, opts OutputOptions) error {
	feature, err := a.extract(ctx, path)
	if err != nil {
		return err
	}
	sel := a.selector.Select(feature.SearchTerms(), feature.VersionHint)
	if opts.JSON {
		return a.writeJSON(sel)
	}

	header := fmt.Sprintf("%s %s (%s, %s) score %d",
		style.Check, sel.Rule.Name, sel.Rule.ID, sel.Rule.Image, sel.Score)
	if sel.Fallback {
		header = fmt.Sprintf("%s %s (%s, %s) fallback", style.Warning, sel.Rule.Name, sel.Rule.ID, sel.Rule.Image)
	}
	fmt.Fprintln(a.stdout, style.Heading.Render(header))
	for _, reason := range sel.Reasons {
		fmt.Fprintf(a.stdout, "  %s %s\n", style.Arrow, reason)
	}
	if len(sel.Scores) == 0 {
		return nil
	}

	fmt.Fprintln(a.stdout)
	ids := slices.SortedFunc(maps.Keys(sel.Scores), func(x, y string) int {
		if c := cmp.Compare(sel.Scores[y], sel.Scores[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, strconv.Itoa(sel.Scores[id])})
	}
	return output.Table(a.stdout, []string{"RULE", "SCORE"}, rows)
}

// SynthesizeOptions choose the base rule and name of a synthesized environment.
type SynthesizeOptions struct {
	// Base is the rule to start from. When empty the selector picks it.
	Base string
	Tag  string
	Name string
}

// Synthesize prints the environment definition a source file needs without
// persisting it.
func (a *App) Synthesize(ctx context.Context, path string, opts SynthesizeOptions) error {
	def, err := a.synthesize(ctx, path, opts)
	if err != nil {
		return err
	}
	return a.writeJSON(def)
}

func (a *App) synthesize(ctx context.Context, path string, opts SynthesizeOptions) (domain.EnvironmentDefinition, error) {
	feature, err := a.extract(ctx, path)
	if err != nil {
		return domain.EnvironmentDefinition{}, err
	}

	base := opts.Base
	if base == "" {
		sel := a.selector.Select(feature.SearchTerms(), feature.VersionHint)
		base = sel.Rule.ID
		a.logger.Info(fmt.Sprintf("using %s as base runtime", sel.Rule.Name))
	}

	return a.synthesizer.Synthesize(ctx, feature, base, domain.SynthesisOptions{
		Tag:  opts.Tag,
		Name: opts.Name,
	})
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
