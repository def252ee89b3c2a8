package list

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/app"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/config"
)

func init() {
	color.NoColor = true
}

func bootDisk(t *testing.T, launch int) string {
	t.Helper()
	root := t.TempDir()
	var ini strings.Builder
	ini.WriteString("[config]\n")
	for i := 0; i < launch; i++ {
		ini.WriteString("[Entry " + string(rune('A'+i)) + "]\n")
	}
	path := filepath.Join(root, "bootloader", "hekate_ipl.ini")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(ini.String()), 0o644))
	return root
}

func newList(t *testing.T, root string) (*List, *bytes.Buffer) {
	t.Helper()
	a, err := app.New(config.Config{BootDisk: root, Language: "en", FiveColumns: "off"}, app.Options{})
	require.NoError(t, err)
	a.IconSize = 8

	var buf bytes.Buffer
	return &List{App: a, Out: &buf}, &buf
}

func TestDo(t *testing.T) {
	root := bootDisk(t, 2)
	l, buf := newList(t, root)

	require.NoError(t, l.Do(context.Background()))
	out := buf.String()

	require.Contains(t, out, "boot disk: "+root)
	require.Contains(t, out, "Launch")
	require.Contains(t, out, "Entry B")
	require.Contains(t, out, "self 2 0")
	require.Contains(t, out, "No entries found")
	require.Contains(t, out, "ums 6 0")
	require.Contains(t, out, "shutdown")
	require.NotContains(t, out, "(hidden)")
}

func TestDoMarksHiddenEntries(t *testing.T) {
	l, buf := newList(t, bootDisk(t, 10))

	require.NoError(t, l.Do(context.Background()))
	out := buf.String()

	require.Contains(t, out, "Entry H")
	require.Contains(t, out, "Entry I (hidden)")
	require.Contains(t, out, "Entry J (hidden)")
}

func TestPageForeignOptions(t *testing.T) {
	var buf bytes.Buffer
	l := &List{}
	l.Page(&buf, carousel.PageSpec{
		Title:   "Other",
		Options: []carousel.Option{{Name: "plain", Index: 7}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Other", lines[0])
	require.Contains(t, lines[2], "plain")
	require.Contains(t, lines[2], "-")
}
