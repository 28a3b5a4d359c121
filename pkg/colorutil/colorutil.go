// Package colorutil provides colour parsing shared by config and the canvas.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common colours.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrBadHex is returned for strings that are not #RRGGBB or #RRGGBBAA.
var ErrBadHex = errors.New("colour must be #RRGGBB or #RRGGBBAA")

// ParseHex parses "#RRGGBB" or "#RRGGBBAA". The leading # is optional.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Override replaces *dst with the parsed value of s when s is non-empty.
func Override(dst *color.RGBA, s string) error {
	if s == "" {
		return nil
	}
	c, err := ParseHex(s)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}
