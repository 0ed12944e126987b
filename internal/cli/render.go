package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

const maxTitleWidth = 80

// row is a task with the position it is addressed by.
type row struct {
	ID         int `json:"id" yaml:"id"`
	model.Task `yaml:",inline"`
}

func rows(tasks []model.Task) []row {
	out := make([]row, len(tasks))
	for i, t := range tasks {
		out[i] = row{ID: i + 1, Task: t}
	}
	return out
}

// renderPanel draws the list the way `todo ls` shows it in text mode.
func renderPanel(w io.Writer, tasks []model.Task, group bool) {
	t := ui.Current()
	d, p := stats(tasks)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(tasks),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	all := rows(tasks)
	if group {
		lines = append(lines, groupLines(all)...)
	} else {
		lines = append(lines, flatLines(all)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(w, lines)
}

func stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(rs []row) []string {
	if len(rs) == 0 {
		return []string{ui.C(ui.Current().Muted, "no tasks")}
	}
	t := ui.Current()
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		box, color := t.BoxUnchecked, t.Muted
		if r.Done {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", r.ID)), ui.C(color, box), ui.Truncate(r.Title, maxTitleWidth)))
	}
	return out
}

// groupLines lists pending tasks before done ones. Rows keep their list ids
// so `todo done N` still addresses what is shown.
func groupLines(rs []row) []string {
	var pend, done []row
	for _, r := range rs {
		if r.Done {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	t := ui.Current()
	section := func(title string, rs []row) []string {
		lines := []string{ui.C(t.Accent, title)}
		if len(rs) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(rs)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
