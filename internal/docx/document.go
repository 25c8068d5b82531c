package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidContainer is returned when the input is not an OOXML
// word-processing container.
var ErrInvalidContainer = errors.New("input is not a docx container")

// Document is an open word-processing container. The main part and header
// parts are parsed into a typed model; every other zip entry is carried
// through byte-identical on save.
type Document struct {
	parts   map[string][]byte
	order   []string
	Word    *WordDocument
	headers map[string]*HeaderPart
}

// Load reads a docx container from r.
func (d *Document) load(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}

	d.parts = make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		d.parts[f.Name] = content
		d.order = append(d.order, f.Name)
	}

	docXML, ok := d.parts["word/document.xml"]
	if !ok {
		return fmt.Errorf("%w: word/document.xml not found", ErrInvalidContainer)
	}

	var wd WordDocument
	if err := xml.Unmarshal(docXML, &wd); err != nil {
		return fmt.Errorf("failed to parse document.xml: %w", err)
	}
	d.Word = &wd

	d.headers = make(map[string]*HeaderPart)
	for _, name := range d.order {
		if !isHeaderPart(name) {
			continue
		}
		var hdr HeaderPart
		// A header that cannot be parsed stays verbatim in the container
		// and is just not editable.
		if err := xml.Unmarshal(d.parts[name], &hdr); err == nil {
			d.headers[name] = &hdr
		}
	}
	return nil
}

// Load parses a docx container from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	var d Document
	if err := d.load(data); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save writes the container to w, re-serializing the main part and any
// parsed header parts and copying all other entries unchanged.
func (d *Document) Save(w io.Writer) error {
	d.parts["word/document.xml"] = marshalDocument(d.Word)
	for name, hdr := range d.headers {
		d.parts[name] = marshalHeader(hdr)
	}

	zw := zip.NewWriter(w)
	for _, name := range d.order {
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create zip entry %s: %w", name, err)
		}
		if _, err := fw.Write(d.parts[name]); err != nil {
			return fmt.Errorf("failed to write zip entry %s: %w", name, err)
		}
	}
	return zw.Close()
}

// Bytes serializes the container to a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns an independent copy of the document by running it through
// a save/load round-trip.
func (d *Document) Clone() (*Document, error) {
	data, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Paragraphs returns the body paragraphs in document order. The returned
// pointers alias the document; mutations are visible on save.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for i := range d.Word.Body.Elements {
		if p := d.Word.Body.Elements[i].Paragraph; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// InsertParagraphAfter splices a new paragraph immediately after the
// paragraph at index paraIdx (an index into Paragraphs()).
func (d *Document) InsertParagraphAfter(paraIdx int, p Paragraph) error {
	seen := -1
	for i := range d.Word.Body.Elements {
		if d.Word.Body.Elements[i].Paragraph == nil {
			continue
		}
		seen++
		if seen != paraIdx {
			continue
		}
		el := BodyElement{Paragraph: &p}
		elems := d.Word.Body.Elements
		elems = append(elems, BodyElement{})
		copy(elems[i+2:], elems[i+1:])
		elems[i+1] = el
		d.Word.Body.Elements = elems
		return nil
	}
	return fmt.Errorf("paragraph index %d out of range", paraIdx)
}

// Headers returns the parsed header parts keyed by part name, in a stable
// order.
func (d *Document) Headers() []*HeaderPart {
	names := make([]string, 0, len(d.headers))
	for name := range d.headers {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*HeaderPart, 0, len(names))
	for _, name := range names {
		out = append(out, d.headers[name])
	}
	return out
}

// EnsureHeader guarantees at least one editable header part exists,
// creating word/header1.xml (plus its content type, relationship and
// section reference) when the document has none.
func (d *Document) EnsureHeader() error {
	if len(d.headers) > 0 {
		return nil
	}

	const partName = "word/header1.xml"
	if _, exists := d.parts[partName]; exists {
		return fmt.Errorf("header part %s exists but is not parseable", partName)
	}

	relID, err := d.addRelationship(headerRelType, "header1.xml")
	if err != nil {
		return err
	}
	if err := d.addContentTypeOverride("/"+partName, headerContentType); err != nil {
		return err
	}

	if d.Word.Body.SectPr == nil {
		d.Word.Body.SectPr = &RawElement{Name: "sectPr"}
	}
	ref := fmt.Sprintf(`<w:headerReference w:type="default" r:id=%q/>`, relID)
	d.Word.Body.SectPr.Inner = ref + d.Word.Body.SectPr.Inner

	hdr := &HeaderPart{}
	d.headers[partName] = hdr
	d.parts[partName] = nil
	d.order = append(d.order, partName)
	return nil
}

func (d *Document) addRelationship(relType, target string) (string, error) {
	const relsName = "word/_rels/document.xml.rels"
	rels := Relationships{Namespace: RelationshipsNamespace}
	if data, ok := d.parts[relsName]; ok {
		if err := xml.Unmarshal(data, &rels); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", relsName, err)
		}
		rels.Namespace = RelationshipsNamespace
	} else {
		d.order = append(d.order, relsName)
	}

	maxID := 0
	for _, rel := range rels.Relationships {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	relID := fmt.Sprintf("rId%d", maxID+1)
	rels.Relationships = append(rels.Relationships, Relationship{
		ID:     relID,
		Type:   relType,
		Target: target,
	})

	data, err := xml.Marshal(&rels)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", relsName, err)
	}
	d.parts[relsName] = append([]byte(xml.Header), data...)
	return relID, nil
}

func (d *Document) addContentTypeOverride(partName, contentType string) error {
	const ctName = "[Content_Types].xml"
	data, ok := d.parts[ctName]
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidContainer, ctName)
	}
	var types ContentTypes
	if err := xml.Unmarshal(data, &types); err != nil {
		return fmt.Errorf("failed to parse %s: %w", ctName, err)
	}
	types.Namespace = "http://schemas.openxmlformats.org/package/2006/content-types"
	types.Overrides = append(types.Overrides, Override{
		PartName:    partName,
		ContentType: contentType,
	})
	out, err := xml.Marshal(&types)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ctName, err)
	}
	d.parts[ctName] = append([]byte(xml.Header), out...)
	return nil
}

func isHeaderPart(name string) bool {
	return strings.HasPrefix(name, "word/header") && strings.HasSuffix(name, ".xml")
}
