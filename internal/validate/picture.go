package validate

import (
	"strings"

	"github.com/thesis-tools/go-thesis-formatter/internal/docx"
)

// GraphicKind is the outcome of classifying a graphic marker.
type GraphicKind int

const (
	// GraphicUnknown is a marker that confirms neither way.
	GraphicUnknown GraphicKind = iota
	// GraphicPicture is a genuine raster/vector picture reference.
	GraphicPicture
	// GraphicDecoration is a decorative vector shape, e.g. the
	// watermark's text-path shape. Never treated as a picture.
	GraphicDecoration
)

// ClassifyGraphic inspects one raw graphic fragment. The predicates run
// in a fixed order: an explicit relationship reference first, then
// aggregated picture markers, then the decoration fingerprint, then a
// generic graphic frame.
func ClassifyGraphic(fragment string) GraphicKind {
	switch {
	case strings.Contains(fragment, `r:embed="`) || strings.Contains(fragment, `r:link="`):
		return GraphicPicture
	case strings.Contains(fragment, "<pic:pic") ||
		strings.Contains(fragment, "<a:blip") ||
		strings.Contains(fragment, "imagedata"):
		return GraphicPicture
	case strings.Contains(fragment, "textpath") || strings.Contains(fragment, "textPath"):
		return GraphicDecoration
	case strings.Contains(fragment, "graphicFrame") || strings.Contains(fragment, "<a:graphic"):
		return GraphicPicture
	}
	return GraphicUnknown
}

// paragraphGraphic classifies a whole paragraph: any confirmed picture
// marker wins over decorations, decorations win over unknowns.
func paragraphGraphic(p *docx.Paragraph) GraphicKind {
	kind := GraphicUnknown
	for _, frag := range p.GraphicXML() {
		switch ClassifyGraphic(frag) {
		case GraphicPicture:
			return GraphicPicture
		case GraphicDecoration:
			kind = GraphicDecoration
		}
	}
	return kind
}
