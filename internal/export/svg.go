package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/particle"
)

var kindFill = map[string]string{
	particle.KindProton.String():     "#ff5555",
	particle.KindStrongBase.String(): "#5588ff",
	particle.KindWeakBase.String():   "#55cc88",
}

// BeakerSVG renders the beaker's current state as a standalone SVG: the
// solution region as a framed rectangle, particles as discs in draw order,
// bonded protons with a highlight ring.
func BeakerSVG(b *beaker.Beaker, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	sol := b.Solution()
	width := sol.Width * scale
	height := sol.Height * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a14"/>
<rect x="1" y="1" width="%.0f" height="%.0f" fill="none" stroke="#444466" stroke-width="2"/>
`, width, height, width, height, width-2, height-2))

	for _, v := range b.Snapshot() {
		fill, ok := kindFill[v.Kind]
		if !ok {
			fill = "#cccccc"
		}
		cx := (v.X - sol.X) * scale
		cy := (v.Y - sol.Y) * scale
		r := v.Radius * scale

		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, fill))
		if v.Bonded {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ffee55" stroke-width="1.5"/>
`, cx, cy, r+2*scale))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
