package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// HSL is the hue/saturation/lightness representation used as the
// intermediate space for deriving related colors. H is in degrees
// [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64
	S float64
	L float64
}

// IsValidHex reports whether s is a syntactically valid 6-hex-digit color.
func IsValidHex(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ParseHex parses a 6-hex-digit color into 0-255 channel values.
func ParseHex(s string) (r, g, b int, err error) {
	if !IsValidHex(s) {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	s = strings.TrimPrefix(s, "#")
	rv, _ := strconv.ParseInt(s[0:2], 16, 32)
	gv, _ := strconv.ParseInt(s[2:4], 16, 32)
	bv, _ := strconv.ParseInt(s[4:6], 16, 32)
	return int(rv), int(gv), int(bv), nil
}

// FormatHex formats 0-255 channel values as a lowercase "#rrggbb" string.
func FormatHex(r, g, b int) string {
	clampCh := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", clampCh(r), clampCh(g), clampCh(b))
}

// RelativeLuminance computes the WCAG relative luminance of a hex color:
// each sRGB channel is linearized, then weighted 0.2126/0.7152/0.0722.
func RelativeLuminance(hex string) (float64, error) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}

	linearize := func(v int) float64 {
		c := float64(v) / 255.0
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}

	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b), nil
}

// ContrastRatio computes the WCAG contrast ratio (L1+0.05)/(L2+0.05) with
// L1 >= L2, so the result is always >= 1.
func ContrastRatio(a, b string) (float64, error) {
	la, err := RelativeLuminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := RelativeLuminance(b)
	if err != nil {
		return 0, err
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

// HexToHSL converts a hex color to HSL.
func HexToHSL(hex string) (HSL, error) {
	ri, gi, bi, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}

	r := float64(ri) / 255.0
	g := float64(gi) / 255.0
	b := float64(bi) / 255.0

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return HSL{H: h, S: s * 100, L: l * 100}, nil
}

// HSLToHex converts an HSL value back to a hex color. Hue wraps modulo 360;
// saturation and lightness are clamped to [0,100].
func HSLToHex(c HSL) string {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clampPct(c.S) / 100
	l := clampPct(c.L) / 100

	if s == 0 {
		v := int(math.Round(l * 255))
		return FormatHex(v, v, v)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hk := h / 360
	r := hueToChannel(p, q, hk+1.0/3.0)
	g := hueToChannel(p, q, hk)
	b := hueToChannel(p, q, hk-1.0/3.0)

	return FormatHex(
		int(math.Round(r*255)),
		int(math.Round(g*255)),
		int(math.Round(b*255)),
	)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
