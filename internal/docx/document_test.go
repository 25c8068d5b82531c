package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const minimalRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const minimalDocRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// buildContainer assembles an in-memory docx from a word/document.xml body.
func buildContainer(t *testing.T, bodyXML string) []byte {
	t.Helper()
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<w:body>` + bodyXML + `</w:body></w:document>`
	return buildContainerFromDocument(t, documentXML)
}

// buildContainerFromDocument assembles a docx around a complete
// word/document.xml part.
func buildContainerFromDocument(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ name, content string }{
		{"[Content_Types].xml", minimalContentTypes},
		{"_rels/.rels", minimalRels},
		{"word/_rels/document.xml.rels", minimalDocRels},
		{"word/document.xml", documentXML},
		{"word/styles.xml", `<?xml version="1.0"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`},
	}
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readZipPart(t *testing.T, container []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(container), int64(len(container)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in container", name)
	return ""
}

func loadContainer(t *testing.T, bodyXML string) *Document {
	t.Helper()
	doc, err := Load(bytes.NewReader(buildContainer(t, bodyXML)))
	require.NoError(t, err)
	return doc
}

func TestLoadRejectsNonContainer(t *testing.T) {
	_, err := Load(strings.NewReader("plain text, not a zip"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContainer)
}

func TestLoadRejectsMissingMainPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = fw.Write([]byte(minimalContentTypes))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Load(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrInvalidContainer)
}

func TestParagraphText(t *testing.T) {
	doc := loadContainer(t, `<w:p><w:pPr><w:pStyle w:val="Heading 1"/><w:jc w:val="center"/></w:pPr>`+
		`<w:r><w:t>第一章</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>绪论</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t xml:space="preserve">  正文段落。</w:t></w:r><w:r><w:br/></w:r><w:r><w:t>第二行</w:t></w:r></w:p>`)

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "第一章\t绪论", paras[0].Text())
	assert.Equal(t, "Heading 1", paras[0].StyleName())
	assert.Equal(t, "center", paras[0].AlignmentValue())
	assert.Equal(t, "  正文段落。\n第二行", paras[1].Text())
	assert.Empty(t, paras[1].StyleName())

	first := paras[1].FirstContentRun()
	require.NotNil(t, first)
	assert.Equal(t, "  正文段落。", first.Text.Text)
}

func TestRoundTripPreservesUnmodeledContent(t *testing.T) {
	body := `<w:p><w:r><w:t>before</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:drawing><wp:inline><a:blip r:embed="rId7"/></wp:inline></w:drawing></w:r></w:p>` +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`
	doc := loadContainer(t, body)

	out, err := doc.Bytes()
	require.NoError(t, err)

	reloaded, err := Load(bytes.NewReader(out))
	require.NoError(t, err)

	paras := reloaded.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "before", paras[0].Text())

	graphics := paras[1].GraphicXML()
	require.Len(t, graphics, 1)
	assert.Contains(t, graphics[0], `r:embed="rId7"`)

	mainXML := readZipPart(t, out, "word/document.xml")
	require.NotEmpty(t, mainXML)
	assert.Contains(t, mainXML, "<w:tbl>")
	assert.Contains(t, mainXML, `<w:pgSz w:w="11906" w:h="16838"/>`)
	assert.Contains(t, mainXML, "</w:sectPr>")
}

func TestSaveKeepsSourceNamespaceDecls(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
		`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
		`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" ` +
		`mc:Ignorable="w14">` +
		`<w:body>` +
		`<w:p><w:r><w:drawing><wp:inline><a:graphic><pic:pic>` +
		`<a:blip r:embed="rId7"/></pic:pic></a:graphic></wp:inline></w:drawing></w:r></w:p>` +
		`</w:body></w:document>`

	doc, err := Load(bytes.NewReader(buildContainerFromDocument(t, documentXML)))
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	mainXML := readZipPart(t, out, "word/document.xml")

	// Every prefix the drawing content uses stays declared on the root.
	assert.Contains(t, mainXML, `xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`)
	assert.Contains(t, mainXML, `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`)
	assert.Contains(t, mainXML, `xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`)
	assert.Contains(t, mainXML, `mc:Ignorable="w14"`)
	assert.Contains(t, mainXML, "<wp:inline>")
	assert.Contains(t, mainXML, "<pic:pic>")

	reloaded, err := Load(bytes.NewReader(out))
	require.NoError(t, err)
	graphics := reloaded.Paragraphs()[0].GraphicXML()
	require.Len(t, graphics, 1)
	assert.Contains(t, graphics[0], `r:embed="rId7"`)
}

func TestSaveDeclaresStampNamespaces(t *testing.T) {
	// The source declares no VML namespaces; anything this package injects
	// (header references, v:shape stamps) must still resolve after save.
	doc := loadContainer(t, `<w:p><w:r><w:t>body</w:t></w:r></w:p>`)

	out, err := doc.Bytes()
	require.NoError(t, err)
	mainXML := readZipPart(t, out, "word/document.xml")

	assert.Contains(t, mainXML, `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
	assert.Contains(t, mainXML, `xmlns:v="urn:schemas-microsoft-com:vml"`)
	assert.Contains(t, mainXML, `xmlns:o="urn:schemas-microsoft-com:office:office"`)
	assert.Equal(t, 1, strings.Count(mainXML, "xmlns:w="))
	assert.Equal(t, 1, strings.Count(mainXML, "xmlns:r="))
}

func TestRoundTripKeepsForeignBodyElementPrefix(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">` +
		`<w:body>` +
		`<w:p><w:r><w:t>式 (1):</w:t></w:r></w:p>` +
		`<m:oMathPara><m:oMath><m:r><m:t>E=mc^2</m:t></m:r></m:oMath></m:oMathPara>` +
		`</w:body></w:document>`

	doc, err := Load(bytes.NewReader(buildContainerFromDocument(t, documentXML)))
	require.NoError(t, err)

	elems := doc.Word.Body.Elements
	require.Len(t, elems, 2)
	require.NotNil(t, elems[1].Raw)
	assert.Equal(t, "oMathPara", elems[1].Raw.Name)
	assert.Equal(t, "http://schemas.openxmlformats.org/officeDocument/2006/math", elems[1].Raw.Space)

	out, err := doc.Bytes()
	require.NoError(t, err)
	mainXML := readZipPart(t, out, "word/document.xml")

	assert.Contains(t, mainXML, "<m:oMathPara>")
	assert.Contains(t, mainXML, "</m:oMathPara>")
	assert.NotContains(t, mainXML, "<w:oMathPara")
}

func TestCloneIsIndependent(t *testing.T) {
	doc := loadContainer(t, `<w:p><w:r><w:t>original</w:t></w:r></w:p>`)

	clone, err := doc.Clone()
	require.NoError(t, err)

	clone.Paragraphs()[0].Runs[0].Text.Text = "changed"
	assert.Equal(t, "original", doc.Paragraphs()[0].Text())
	assert.Equal(t, "changed", clone.Paragraphs()[0].Text())
}

func TestInsertParagraphAfter(t *testing.T) {
	doc := loadContainer(t, `<w:p><w:r><w:t>one</w:t></w:r></w:p>`+
		`<w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`+
		`<w:p><w:r><w:t>two</w:t></w:r></w:p>`)

	warn := Paragraph{Runs: []Run{{Text: &Text{Text: "inserted"}}}}
	require.NoError(t, doc.InsertParagraphAfter(0, warn))

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "one", paras[0].Text())
	assert.Equal(t, "inserted", paras[1].Text())
	assert.Equal(t, "two", paras[2].Text())

	// The table stays between the inserted paragraph and "two".
	elems := doc.Word.Body.Elements
	require.Len(t, elems, 4)
	assert.Equal(t, "inserted", elems[1].Paragraph.Text())
	require.NotNil(t, elems[2].Raw)
	assert.Equal(t, "tbl", elems[2].Raw.Name)

	assert.Error(t, doc.InsertParagraphAfter(9, warn))
}

func TestEnsureHeaderCreatesPartAndWiring(t *testing.T) {
	doc := loadContainer(t, `<w:p><w:r><w:t>body</w:t></w:r></w:p>`+
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	require.Empty(t, doc.Headers())

	require.NoError(t, doc.EnsureHeader())
	require.Len(t, doc.Headers(), 1)

	// Idempotent once a header exists.
	require.NoError(t, doc.EnsureHeader())
	require.Len(t, doc.Headers(), 1)

	out, err := doc.Bytes()
	require.NoError(t, err)

	assert.Contains(t, readZipPart(t, out, "word/header1.xml"), "<w:hdr")
	assert.Contains(t, readZipPart(t, out, "[Content_Types].xml"), "/word/header1.xml")
	assert.Contains(t, readZipPart(t, out, "word/_rels/document.xml.rels"), `Target="header1.xml"`)
	assert.Contains(t, readZipPart(t, out, "word/document.xml"), `<w:headerReference w:type="default" r:id="rId2"/>`)

	reloaded, err := Load(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, reloaded.Headers(), 1)
}

func TestUnitConversions(t *testing.T) {
	pt, ok := TwipsToPoints("240")
	require.True(t, ok)
	assert.Equal(t, 12.0, pt)
	assert.Equal(t, "480", PointsToTwips(24))

	pt, ok = HalfPointsToPoints("24")
	require.True(t, ok)
	assert.Equal(t, 12.0, pt)
	assert.Equal(t, "32", PointsToHalfPoints(16))

	_, ok = TwipsToPoints("auto")
	assert.False(t, ok)
}

func TestBoldOff(t *testing.T) {
	assert.False(t, (&Bold{}).Off())
	assert.True(t, (&Bold{Val: "0"}).Off())
	assert.True(t, (&Bold{Val: "false"}).Off())
	assert.False(t, (&Bold{Val: "1"}).Off())
	var b *Bold
	assert.False(t, b.Off())
}
