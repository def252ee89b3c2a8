// Package list prints the reboot menu as tables, one per page.
package list

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/app"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
)

// List loads the menu from the boot disk and prints it.
type List struct {
	App *app.App

	// Out defaults to color.Output.
	Out io.Writer
}

// Do resolves the boot disk, prints every page and releases the disk again.
func (l *List) Do(ctx context.Context) error {
	m, err := l.App.Load(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = l.App.Close(context.WithoutCancel(ctx)) }()

	out := l.Out
	if out == nil {
		out = color.Output
	}

	faint := color.New(color.Faint)
	_, _ = fmt.Fprintln(out, faint.Sprintf("boot disk: %s  five columns: %t  theme hue: %d",
		m.Root, m.FiveColumns, m.Nyx.ThemeHue))

	for _, spec := range m.Pages {
		_, _ = fmt.Fprintln(out, "")
		l.Page(out, spec)
	}
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Page renders one page. Entries that do not fit the grid are marked.
func (l *List) Page(out io.Writer, spec carousel.PageSpec) {
	bold := color.New(color.Bold)
	hidden := color.New(color.FgYellow)

	_, _ = fmt.Fprintln(out, bold.Sprint(spec.Title))
	if len(spec.Options) == 0 {
		_, _ = fmt.Fprintln(out, "  "+spec.EmptyMessage)
		return
	}

	layout := carousel.ComputeLayout(len(spec.Options), spec.UseFiveColumns)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Name"), bold.Sprint("Kind"), bold.Sprint("r2p"), bold.Sprint("Icon"))
	for i, o := range spec.Options {
		kind, args, icon := "-", "-", "-"
		if item, ok := menu.ItemOf(o); ok {
			kind = item.Entry.Kind.String()
			if a, ok := item.Entry.RebootArgs(); ok {
				args = a.Action + " " + a.Param1 + " " + a.Param2
			}
			if item.Image != nil {
				icon = item.Origin.String()
			}
		}

		name := o.Name
		if i >= layout.MaxItems {
			name = hidden.Sprint(name + " (hidden)")
		}
		tbl.AddRow(strconv.Itoa(o.Index), name, kind, args, icon)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
