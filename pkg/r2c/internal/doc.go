// Package internal contains the SDL infrastructure of the kiosk frontend:
// window and renderer setup, input mapping, fonts, drawing helpers and the
// power button reader. Types and functions in this package are not part of
// the public API.
package internal
