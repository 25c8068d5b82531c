package docx

import (
	"encoding/xml"
	"strings"
)

// Serialization writes the main and header parts back out with the w:
// prefix convention Word expects. Only modeled elements are rebuilt; raw
// passthrough elements re-emit their captured inner XML verbatim.

var namespacePrefix = map[string]string{
	WordprocessingMLNamespace:              "w",
	DocRelationshipsNamespace:              "r",
	VMLNamespace:                           "v",
	OfficeNamespace:                        "o",
	WordDrawingNamespace:                   "wp",
	DrawingMLNamespace:                     "a",
	PictureNamespace:                       "pic",
	MathNamespace:                          "m",
	MarkupCompatNamespace:                  "mc",
	OfficeWordNamespace:                    "w10",
	Word2010MLNamespace:                    "w14",
	"http://www.w3.org/XML/1998/namespace": "xml",
}

// standardNamespaces are the declarations a part written by this package
// may rely on (stamp VML, header references, drawing passthrough).
var standardNamespaces = []xml.Attr{
	{Name: xml.Name{Space: "xmlns", Local: "w"}, Value: WordprocessingMLNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "r"}, Value: DocRelationshipsNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "v"}, Value: VMLNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "o"}, Value: OfficeNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "wp"}, Value: WordDrawingNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "a"}, Value: DrawingMLNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "pic"}, Value: PictureNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "m"}, Value: MathNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "mc"}, Value: MarkupCompatNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "w10"}, Value: OfficeWordNamespace},
	{Name: xml.Name{Space: "xmlns", Local: "w14"}, Value: Word2010MLNamespace},
}

// writeRootDecls re-emits the captured root attributes verbatim, then adds
// any standard declaration the source did not carry, so both the source's
// raw passthrough content and anything this package injects stay resolvable.
func writeRootDecls(sb *strings.Builder, attrs []xml.Attr) {
	declaredPrefix := make(map[string]bool, len(attrs))
	declaredURI := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			declaredPrefix[a.Name.Local] = true
			declaredURI[a.Value] = a.Name.Local
		}
	}

	first := true
	write := func(name, value string) {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		sb.WriteString(name + `="`)
		xml.EscapeText(sb, []byte(value))
		sb.WriteString(`"`)
	}

	for _, a := range attrs {
		var name string
		switch {
		case a.Name.Space == "xmlns":
			name = "xmlns:" + a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			name = "xmlns"
		case a.Name.Space == "":
			name = a.Name.Local
		default:
			prefix, ok := declaredURI[a.Name.Space]
			if prefix == "" {
				prefix, ok = namespacePrefix[a.Name.Space]
			}
			if !ok {
				continue
			}
			name = prefix + ":" + a.Name.Local
		}
		write(name, a.Value)
	}

	for _, ns := range standardNamespaces {
		if declaredPrefix[ns.Name.Local] || declaredURI[ns.Value] != "" {
			continue
		}
		write("xmlns:"+ns.Name.Local, ns.Value)
	}
}

func marshalDocument(wd *WordDocument) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString("<w:document ")
	writeRootDecls(&sb, wd.RootAttrs)
	sb.WriteString("><w:body>")
	for i := range wd.Body.Elements {
		el := &wd.Body.Elements[i]
		if el.Paragraph != nil {
			writeParagraph(&sb, el.Paragraph)
		} else if el.Raw != nil {
			writeRaw(&sb, el.Raw)
		}
	}
	if wd.Body.SectPr != nil {
		writeRaw(&sb, wd.Body.SectPr)
	}
	sb.WriteString("</w:body></w:document>")
	return []byte(sb.String())
}

func marshalHeader(h *HeaderPart) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString("<w:hdr ")
	writeRootDecls(&sb, h.RootAttrs)
	sb.WriteString(">")
	for i := range h.Paragraphs {
		writeParagraph(&sb, &h.Paragraphs[i])
	}
	sb.WriteString("</w:hdr>")
	return []byte(sb.String())
}

func writeParagraph(sb *strings.Builder, p *Paragraph) {
	sb.WriteString("<w:p>")
	if pr := p.Properties; pr != nil {
		sb.WriteString("<w:pPr>")
		if pr.Style != nil {
			writeValElement(sb, "w:pStyle", pr.Style.Val)
		}
		if sp := pr.Spacing; sp != nil {
			sb.WriteString("<w:spacing")
			writeAttr(sb, "w:before", sp.Before)
			writeAttr(sb, "w:after", sp.After)
			writeAttr(sb, "w:line", sp.Line)
			writeAttr(sb, "w:lineRule", sp.LineRule)
			sb.WriteString("/>")
		}
		if in := pr.Indent; in != nil {
			sb.WriteString("<w:ind")
			writeAttr(sb, "w:firstLine", in.FirstLine)
			writeAttr(sb, "w:left", in.Left)
			writeAttr(sb, "w:right", in.Right)
			sb.WriteString("/>")
		}
		if pr.Align != nil {
			writeValElement(sb, "w:jc", pr.Align.Val)
		}
		sb.WriteString("</w:pPr>")
	}
	for i := range p.Runs {
		writeRun(sb, &p.Runs[i])
	}
	sb.WriteString("</w:p>")
}

func writeRun(sb *strings.Builder, r *Run) {
	sb.WriteString("<w:r>")
	if pr := r.Properties; pr != nil {
		sb.WriteString("<w:rPr>")
		if f := pr.Font; f != nil {
			sb.WriteString("<w:rFonts")
			writeAttr(sb, "w:ascii", f.ASCII)
			writeAttr(sb, "w:hAnsi", f.HAnsi)
			writeAttr(sb, "w:eastAsia", f.EastAsia)
			sb.WriteString("/>")
		}
		if b := pr.Bold; b != nil {
			if b.Val == "" {
				sb.WriteString("<w:b/>")
			} else {
				writeValElement(sb, "w:b", b.Val)
			}
		}
		if pr.Color != nil {
			writeValElement(sb, "w:color", pr.Color.Val)
		}
		if pr.Size != nil {
			writeValElement(sb, "w:sz", pr.Size.Val)
		}
		if pr.Highlight != nil {
			writeValElement(sb, "w:highlight", pr.Highlight.Val)
		}
		if pr.VertAlign != nil {
			writeValElement(sb, "w:vertAlign", pr.VertAlign.Val)
		}
		sb.WriteString("</w:rPr>")
	}
	switch {
	case r.Text != nil:
		if r.Text.Space != "" {
			sb.WriteString(`<w:t xml:space="` + r.Text.Space + `">`)
		} else {
			sb.WriteString("<w:t>")
		}
		xml.EscapeText(sb, []byte(r.Text.Text))
		sb.WriteString("</w:t>")
	case r.Tab != nil:
		sb.WriteString("<w:tab/>")
	case r.Break != nil:
		if r.Break.Type != "" {
			sb.WriteString(`<w:br w:type="` + r.Break.Type + `"/>`)
		} else {
			sb.WriteString("<w:br/>")
		}
	case r.Drawing != nil:
		sb.WriteString("<w:drawing>")
		sb.WriteString(r.Drawing.Inner)
		sb.WriteString("</w:drawing>")
	case r.Pict != nil:
		sb.WriteString("<w:pict>")
		sb.WriteString(r.Pict.Inner)
		sb.WriteString("</w:pict>")
	case r.Object != nil:
		sb.WriteString("<w:object>")
		sb.WriteString(r.Object.Inner)
		sb.WriteString("</w:object>")
	}
	sb.WriteString("</w:r>")
}

func writeRaw(sb *strings.Builder, raw *RawElement) {
	name := raw.Name
	var nsDecl string
	switch prefix, ok := namespacePrefix[raw.Space]; {
	case raw.Space == "" || raw.Space == WordprocessingMLNamespace:
		name = "w:" + name
	case ok:
		name = prefix + ":" + name
	default:
		// Unknown namespace: declare it on the element itself.
		nsDecl = raw.Space
	}
	sb.WriteString("<" + name)
	if nsDecl != "" {
		sb.WriteString(` xmlns="`)
		xml.EscapeText(sb, []byte(nsDecl))
		sb.WriteString(`"`)
	}
	for _, a := range raw.Attrs {
		prefix, ok := namespacePrefix[a.Name.Space]
		attrName := a.Name.Local
		if ok {
			attrName = prefix + ":" + attrName
		} else if a.Name.Space != "" {
			continue
		}
		sb.WriteString(" " + attrName + `="`)
		xml.EscapeText(sb, []byte(a.Value))
		sb.WriteString(`"`)
	}
	if raw.Inner == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
	sb.WriteString(raw.Inner)
	sb.WriteString("</" + name + ">")
}

func writeValElement(sb *strings.Builder, name, val string) {
	sb.WriteString("<" + name + ` w:val="`)
	xml.EscapeText(sb, []byte(val))
	sb.WriteString(`"/>`)
}

func writeAttr(sb *strings.Builder, name, val string) {
	if val == "" {
		return
	}
	sb.WriteString(" " + name + `="`)
	xml.EscapeText(sb, []byte(val))
	sb.WriteString(`"`)
}
