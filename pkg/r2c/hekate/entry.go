package hekate

import (
	"strconv"
)

// Kind classifies an entry by the reboot action it triggers.
type Kind int

const (
	KindLaunch Kind = iota
	KindConfig
	KindUMS
	KindBootloader
	KindReboot
	KindShutdown
)

func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch"
	case KindConfig:
		return "config"
	case KindUMS:
		return "ums"
	case KindBootloader:
		return "bootloader"
	case KindReboot:
		return "reboot"
	case KindShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// IsPower reports whether the entry leaves the running system without booting
// a specific target.
func (k Kind) IsPower() bool {
	return k == KindBootloader || k == KindReboot || k == KindShutdown
}

// Glyph names of the embedded fallback icons.
const (
	GlyphRocket     = "rocket"
	GlyphCog        = "cog"
	GlyphHDD        = "hdd"
	GlyphBootloader = "bootloader"
	GlyphReboot     = "reboot"
	GlyphPower      = "power"
)

// Entry is one selectable boot target.
type Entry struct {
	Kind  Kind
	Name  string
	Index int    // hekate entry number, or UMS target number
	Icon  string // bmp path relative to the boot disk
	Glyph string // fallback glyph name
}

// RebootArgs are the values written to the r2p sysfs interface.
type RebootArgs struct {
	Action string
	Param1 string
	Param2 string
}

// RebootArgs maps the entry to its r2p arguments. Shutdown has none.
func (e Entry) RebootArgs() (RebootArgs, bool) {
	idx := strconv.Itoa(e.Index)

	switch e.Kind {
	case KindLaunch:
		return RebootArgs{Action: "self", Param1: idx, Param2: "0"}, true
	case KindConfig:
		return RebootArgs{Action: "self", Param1: idx, Param2: "1"}, true
	case KindUMS:
		return RebootArgs{Action: "ums", Param1: idx, Param2: "0"}, true
	case KindBootloader:
		return RebootArgs{Action: "bootloader", Param1: "0", Param2: "0"}, true
	case KindReboot:
		return RebootArgs{Action: "normal", Param1: "0", Param2: "0"}, true
	default:
		return RebootArgs{}, false
	}
}
