package docbuild

import (
	"encoding/xml"
	"fmt"

	"github.com/fumiama/go-docx"
)

// cloneDrawing produces an owned deep copy of a drawing subtree by
// round-tripping it through its XML form. The copy shares nothing with
// the source tree, so embed-id rewrites cannot leak back.
func cloneDrawing(d *docx.Drawing) (*docx.Drawing, error) {
	raw, err := xml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal drawing: %w", err)
	}
	var c docx.Drawing
	if err := xml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unmarshal drawing: %w", err)
	}
	return &c, nil
}

// rewriteEmbeds replaces every embedded image reference in the drawing
// with its mapped destination id. It reports whether all references were
// resolvable; an unmapped reference leaves the drawing unusable in the
// destination package.
func rewriteEmbeds(d *docx.Drawing, rm RelationshipMap) bool {
	ok := true
	if d.Inline != nil {
		ok = rewriteGraphic(d.Inline.Graphic, rm) && ok
	}
	if d.Anchor != nil {
		ok = rewriteGraphic(d.Anchor.Graphic, rm) && ok
	}
	return ok
}

func rewriteGraphic(g *docx.AGraphic, rm RelationshipMap) bool {
	blip := graphicBlip(g)
	if blip == nil || blip.Embed == "" {
		return false
	}
	newID, found := rm[blip.Embed]
	if !found {
		return false
	}
	blip.Embed = newID
	return true
}

func graphicBlip(g *docx.AGraphic) *docx.ABlip {
	if g == nil || g.GraphicData == nil || g.GraphicData.Pic == nil {
		return nil
	}
	fill := g.GraphicData.Pic.BlipFill
	if fill == nil {
		return nil
	}
	return &fill.Blip
}
