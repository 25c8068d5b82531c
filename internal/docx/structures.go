package docx

import (
	"encoding/xml"
	"strconv"
)

// OOXML namespaces used across the package.
const (
	WordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	RelationshipsNamespace    = "http://schemas.openxmlformats.org/package/2006/relationships"
	DocRelationshipsNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	VMLNamespace              = "urn:schemas-microsoft-com:vml"
	OfficeNamespace           = "urn:schemas-microsoft-com:office:office"
	WordDrawingNamespace      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	DrawingMLNamespace        = "http://schemas.openxmlformats.org/drawingml/2006/main"
	PictureNamespace          = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	MathNamespace             = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	MarkupCompatNamespace     = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	OfficeWordNamespace       = "urn:schemas-microsoft-com:office:word"
	Word2010MLNamespace       = "http://schemas.microsoft.com/office/word/2010/wordml"

	headerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	headerRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
)

// WordDocument mirrors the root of word/document.xml. RootAttrs keeps the
// source root element's attributes, namespace declarations included, so a
// save re-emits exactly the prefixes the raw passthrough content relies on.
type WordDocument struct {
	XMLName   xml.Name
	RootAttrs []xml.Attr
	Body      Body
}

// Body holds the top-level body elements in document order. Paragraphs are
// fully modeled; everything else (tables, bookmarks, sdt blocks) is kept as
// raw XML so a save round-trip does not drop it.
type Body struct {
	Elements []BodyElement
	SectPr   *RawElement
}

// BodyElement is either a modeled paragraph or a raw passthrough element.
type BodyElement struct {
	Paragraph *Paragraph
	Raw       *RawElement
}

// RawElement preserves an element we do not model: its local name, its
// resolved namespace and its inner XML, re-emitted verbatim on save.
type RawElement struct {
	Name  string
	Space string
	Attrs []xml.Attr
	Inner string
}

// Paragraph represents a w:p element.
type Paragraph struct {
	Properties *ParagraphProps `xml:"pPr"`
	Runs       []Run           `xml:"r"`
}

// ParagraphProps represents w:pPr.
type ParagraphProps struct {
	Style   *StyleRef  `xml:"pStyle"`
	Spacing *Spacing   `xml:"spacing"`
	Indent  *Indent    `xml:"ind"`
	Align   *Alignment `xml:"jc"`
}

// StyleRef represents w:pStyle.
type StyleRef struct {
	Val string `xml:"val,attr"`
}

// Spacing represents w:spacing. Before/After are twentieths of a point;
// Line is interpreted through LineRule ("auto" multiples of 240, or an
// exact twip value).
type Spacing struct {
	Before   string `xml:"before,attr,omitempty"`
	After    string `xml:"after,attr,omitempty"`
	Line     string `xml:"line,attr,omitempty"`
	LineRule string `xml:"lineRule,attr,omitempty"`
}

// Indent represents w:ind, values in twentieths of a point.
type Indent struct {
	FirstLine string `xml:"firstLine,attr,omitempty"`
	Left      string `xml:"left,attr,omitempty"`
	Right     string `xml:"right,attr,omitempty"`
}

// Alignment represents w:jc.
type Alignment struct {
	Val string `xml:"val,attr"`
}

// Run represents a w:r element. Exactly one content field is normally set.
// Drawing, Pict and Object keep their inner XML verbatim so graphic markers
// survive a round-trip and stay inspectable.
type Run struct {
	Properties *RunProps `xml:"rPr"`
	Text       *Text     `xml:"t"`
	Tab        *Tab      `xml:"tab"`
	Break      *Break    `xml:"br"`
	Drawing    *Drawing  `xml:"drawing"`
	Pict       *Pict     `xml:"pict"`
	Object     *Object   `xml:"object"`
}

// RunProps represents w:rPr.
type RunProps struct {
	Bold      *Bold      `xml:"b"`
	Color     *Color     `xml:"color"`
	Size      *FontSize  `xml:"sz"`
	Font      *RunFont   `xml:"rFonts"`
	Highlight *Highlight `xml:"highlight"`
	VertAlign *VertAlign `xml:"vertAlign"`
}

// Text represents w:t.
type Text struct {
	Space string `xml:"space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// Tab represents w:tab.
type Tab struct{}

// Break represents w:br.
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// Bold represents w:b. An empty Val means "on".
type Bold struct {
	Val string `xml:"val,attr,omitempty"`
}

// Off reports whether the element explicitly disables bold.
func (b *Bold) Off() bool {
	return b != nil && (b.Val == "0" || b.Val == "false" || b.Val == "none")
}

// Color represents w:color.
type Color struct {
	Val string `xml:"val,attr"`
}

// FontSize represents w:sz, in half-points.
type FontSize struct {
	Val string `xml:"val,attr"`
}

// RunFont represents w:rFonts with the script variants the format carries.
type RunFont struct {
	ASCII    string `xml:"ascii,attr,omitempty"`
	HAnsi    string `xml:"hAnsi,attr,omitempty"`
	EastAsia string `xml:"eastAsia,attr,omitempty"`
}

// Highlight represents w:highlight.
type Highlight struct {
	Val string `xml:"val,attr"`
}

// VertAlign represents w:vertAlign (superscript/subscript).
type VertAlign struct {
	Val string `xml:"val,attr"`
}

// Drawing represents w:drawing; inner XML kept verbatim.
type Drawing struct {
	Inner string `xml:",innerxml"`
}

// Pict represents w:pict (legacy VML container); inner XML kept verbatim.
type Pict struct {
	Inner string `xml:",innerxml"`
}

// Object represents w:object (embedded OLE, e.g. equations); inner XML
// kept verbatim.
type Object struct {
	Inner string `xml:",innerxml"`
}

// HeaderPart mirrors a word/headerN.xml part. RootAttrs works as on
// WordDocument; it stays empty for parts this package creates.
type HeaderPart struct {
	XMLName    xml.Name
	RootAttrs  []xml.Attr
	Paragraphs []Paragraph
}

// ContentTypes represents [Content_Types].xml.
type ContentTypes struct {
	XMLName   xml.Name   `xml:"Types"`
	Namespace string     `xml:"xmlns,attr"`
	Defaults  []Default  `xml:"Default"`
	Overrides []Override `xml:"Override"`
}

// Default represents a default content type mapping.
type Default struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Override represents a part-name content type override.
type Override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Relationships represents a .rels part.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Namespace     string         `xml:"xmlns,attr"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship represents a single package relationship.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// TwipsToPoints parses a twentieths-of-a-point attribute value.
func TwipsToPoints(v string) (float64, bool) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n / 20, true
}

// PointsToTwips renders a point value as a twentieths-of-a-point attribute.
func PointsToTwips(pt float64) string {
	return strconv.Itoa(int(pt*20 + 0.5))
}

// HalfPointsToPoints parses a w:sz attribute value.
func HalfPointsToPoints(v string) (float64, bool) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n / 2, true
}

// PointsToHalfPoints renders a point value as a w:sz attribute.
func PointsToHalfPoints(pt float64) string {
	return strconv.Itoa(int(pt*2 + 0.5))
}
