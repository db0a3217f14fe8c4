// Package docbuild rebuilds an output document from a parsed source: it
// copies elements in order, inserts split markers, and carries image
// parts across packages.
package docbuild

import (
	"errors"
	"log/slog"
	"path"

	"github.com/fumiama/go-docx"
)

// RelationshipMap maps a source package's image embed ids to the ids
// registered in the destination package. Built once per reconstruction,
// never shared across documents.
type RelationshipMap map[string]string

// CopyImageParts copies every image part referenced from the source body
// into the destination package and returns the old-id to new-id table.
// A failure on one image is logged and skipped; the mapping simply omits
// that id and the reconstructor later degrades that run to text.
func CopyImageParts(src, dst *docx.Docx, log *slog.Logger) RelationshipMap {
	rm := make(RelationshipMap)

	for _, id := range sourceEmbedIDs(src) {
		if _, done := rm[id]; done {
			continue
		}
		target, err := src.ReferTarget(id)
		if err != nil {
			log.Warn("image relationship unresolved, skipping", "embed_id", id, "error", err)
			continue
		}
		media := src.Media(path.Base(target))
		if media == nil {
			log.Warn("image payload missing, skipping", "embed_id", id, "target", target)
			continue
		}
		newID, err := registerImage(dst, media.Data)
		if err != nil {
			log.Warn("image copy failed, skipping", "embed_id", id, "error", err)
			continue
		}
		rm[id] = newID
	}

	return rm
}

// sourceEmbedIDs walks the body drawings in document order and returns
// the embed ids they reference, duplicates included.
func sourceEmbedIDs(src *docx.Docx) []string {
	var ids []string
	for _, it := range src.Document.Body.Items {
		p, ok := it.(*docx.Paragraph)
		if !ok {
			continue
		}
		for _, child := range p.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				d, ok := rc.(*docx.Drawing)
				if !ok {
					continue
				}
				if d.Inline != nil {
					if blip := graphicBlip(d.Inline.Graphic); blip != nil && blip.Embed != "" {
						ids = append(ids, blip.Embed)
					}
				}
				if d.Anchor != nil {
					if blip := graphicBlip(d.Anchor.Graphic); blip != nil && blip.Embed != "" {
						ids = append(ids, blip.Embed)
					}
				}
			}
		}
	}
	return ids
}

// registerImage adds the payload to the destination package and returns
// the relationship id it was registered under. The drawing produced as a
// side effect is discarded together with its scratch paragraph; only the
// media part and the relationship entry persist.
func registerImage(dst *docx.Docx, data []byte) (string, error) {
	scratch := dst.AddParagraph()
	run, err := scratch.AddInlineDrawing(data)

	items := dst.Document.Body.Items
	if len(items) > 0 {
		dst.Document.Body.Items = items[:len(items)-1]
	}

	if err != nil {
		return "", err
	}
	for _, rc := range run.Children {
		d, ok := rc.(*docx.Drawing)
		if !ok {
			continue
		}
		if d.Inline != nil {
			if blip := graphicBlip(d.Inline.Graphic); blip != nil && blip.Embed != "" {
				return blip.Embed, nil
			}
		}
	}
	return "", errors.New("no embed id on generated drawing")
}
