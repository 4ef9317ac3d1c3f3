package app

import (
	"context"
	"fmt"

	"go.trai.ch/lcr/internal/ui/output"
	"go.trai.ch/lcr/internal/ui/style"
	"golang.org/x/sync/errgroup"
)

// doctorConcurrency bounds the concurrent image probes.
const doctorConcurrency = 4

// ImageStatus is the presence of one rule's image on the local daemon.
type ImageStatus struct {
	RuleID  string `json:"rule_id"`
	Image   string `json:"image"`
	Present bool   `json:"present"`
	Error   string `json:"error,omitempty"`
}

// Doctor checks the container daemon and the presence of every rule image.
func (a *App) Doctor(ctx context.Context, opts OutputOptions) error {
	if err := a.docker.Ping(ctx); err != nil {
		fmt.Fprintln(a.stdout, style.Bad.Render(style.Cross+" docker daemon unreachable"))
		return err
	}
	if !opts.JSON {
		fmt.Fprintln(a.stdout, style.Good.Render(style.Check+" docker daemon reachable"))
	}

	rules := a.rules.All()
	statuses := make([]ImageStatus, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(doctorConcurrency)
	for i, r := range rules {
		g.Go(func() error {
			present, err := a.docker.ImageExists(gctx, r.Image)
			statuses[i] = ImageStatus{RuleID: r.ID, Image: r.Image, Present: present}
			if err != nil {
				statuses[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	if opts.JSON {
		return a.writeJSON(statuses)
	}

	rows := make([][]string, 0, len(statuses))
	missing := 0
	for _, s := range statuses {
		state := style.Good.Render(style.Check + " present")
		switch {
		case s.Error != "":
			state = style.Bad.Render(style.Cross + " " + s.Error)
			missing++
		case !s.Present:
			state = style.Bad.Render(style.Cross + " missing")
			missing++
		}
		rows = append(rows, []string{s.RuleID, s.Image, state})
	}
	if err := output.Table(a.stdout, []string{"RULE", "IMAGE", "STATUS"}, rows); err != nil {
		return err
	}
	if missing > 0 {
		a.logger.Warn(fmt.Sprintf("%d of %d runtime images are not available locally", missing, len(statuses)))
	}
	return nil
}

