package docx

import (
	"encoding/xml"
)

// UnmarshalXML records the w:document root attributes (the namespace
// declarations raw passthrough content depends on) and decodes the body.
func (wd *WordDocument) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	wd.XMLName = start.Name
	wd.RootAttrs = append([]xml.Attr(nil), start.Attr...)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				if err := d.DecodeElement(&wd.Body, &t); err != nil {
					return err
				}
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML records the w:hdr root attributes and decodes the header
// paragraphs.
func (h *HeaderPart) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	h.XMLName = start.Name
	h.RootAttrs = append([]xml.Attr(nil), start.Attr...)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				var p Paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				h.Paragraphs = append(h.Paragraphs, p)
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML walks the body children in document order, fully decoding
// paragraphs and keeping every other element as a raw passthrough.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p Paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, BodyElement{Paragraph: &p})
			case "sectPr":
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				b.SectPr = raw
			default:
				raw, err := decodeRaw(d, t)
				if err != nil {
					return err
				}
				b.Elements = append(b.Elements, BodyElement{Raw: raw})
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeRaw(d *xml.Decoder, start xml.StartElement) (*RawElement, error) {
	var tmp struct {
		Inner string `xml:",innerxml"`
	}
	if err := d.DecodeElement(&tmp, &start); err != nil {
		return nil, err
	}
	attrs := make([]xml.Attr, 0, len(start.Attr))
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		attrs = append(attrs, a)
	}
	return &RawElement{Name: start.Name.Local, Space: start.Name.Space, Attrs: attrs, Inner: tmp.Inner}, nil
}
