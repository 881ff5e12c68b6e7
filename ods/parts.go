package ods

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"golang.org/x/text/language"
)

const (
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8"?>`
	odfVersion = "1.2"

	nsOffice   = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsMeta     = "urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
	nsConfig   = "urn:oasis:names:tc:opendocument:xmlns:config:1.0"
	nsManifest = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"
	nsDC       = "http://purl.org/dc/elements/1.1/"
	nsOOO      = "http://openoffice.org/2004/office"
	nsXLink    = "http://www.w3.org/1999/xlink"
)

// namespaces declared by styles and content parts
const namespaces = ` xmlns:office="` + nsOffice + `"` +
	` xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"` +
	` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
	` xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"` +
	` xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"` +
	` xmlns:number="urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0"` +
	` xmlns:svg="urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"` +
	` xmlns:xlink="` + nsXLink + `"` +
	` xmlns:dc="` + nsDC + `"` +
	` xmlns:meta="` + nsMeta + `"` +
	` xmlns:of="urn:oasis:names:tc:opendocument:xmlns:of:1.2"` +
	` xmlns:calcext="urn:org:documentfoundation:names:experimental:calc:xmlns:calcext:1.0"` +
	` office:version="` + odfVersion + `"`

// Parts listed in manifest besides the root entry.
var manifestParts = []string{"content.xml", "styles.xml", "meta.xml", "settings.xml"}

func (w *Writer) stylesPart() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString("<office:document-styles" + namespaces + ">")
	b.WriteString("<office:styles>")
	w.reg.WriteDataStyles(w.util, &b)
	w.reg.WriteCommonStyles(w.util, &b)
	b.WriteString("</office:styles><office:automatic-styles>")
	w.reg.WritePageLayouts(w.util, &b)
	w.reg.WriteStylesAutomaticStyles(w.util, &b)
	b.WriteString("</office:automatic-styles><office:master-styles>")
	w.reg.WriteMasterStyles(w.util, &b)
	b.WriteString("</office:master-styles></office:document-styles>")
	return b.Bytes()
}

func (w *Writer) contentPrelude() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString("<office:document-content" + namespaces + ">")
	b.WriteString("<office:scripts/><office:automatic-styles>")
	w.reg.WriteDataStyles(w.util, &b)
	w.reg.WriteContentAutomaticStyles(w.util, &b)
	b.WriteString("</office:automatic-styles><office:body><office:spreadsheet>")
	return b.Bytes()
}

// contentPostlude closes content part. Auto filters are database ranges,
// first range of every table is the anonymous one spreadsheet applications
// attach filter buttons to.
func (w *Writer) contentPostlude() []byte {
	var b bytes.Buffer
	opened := false
	for i, t := range w.tables.Values() {
		for j, r := range t.AutoFilters() {
			if !opened {
				b.WriteString("<table:database-ranges>")
				opened = true
			}
			name := "__Anonymous_Sheet_DB__" + strconv.Itoa(i)
			if j > 0 {
				name = fmt.Sprintf("Filter_%d_%d", i, j)
			}
			b.WriteString("<table:database-range")
			w.util.AppendEAttribute(&b, "table:name", name)
			w.util.AppendEAttribute(&b, "table:target-range-address", r.Address(t.Name()))
			w.util.AppendAttribute(&b, "table:display-filter-buttons", "true")
			b.WriteString("/>")
		}
	}
	if opened {
		b.WriteString("</table:database-ranges>")
	}
	b.WriteString("</office:spreadsheet></office:body></office:document-content>")
	return b.Bytes()
}

func writeDoc(doc *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newDoc(root string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(root)
}

func (w *Writer) metaPart() ([]byte, error) {
	doc, root := newDoc("office:document-meta")
	root.CreateAttr("xmlns:office", nsOffice)
	root.CreateAttr("xmlns:meta", nsMeta)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:xlink", nsXLink)
	root.CreateAttr("office:version", odfVersion)

	meta := root.CreateElement("office:meta")
	meta.CreateElement("meta:generator").SetText(w.generator)
	if w.title != "" {
		meta.CreateElement("dc:title").SetText(w.title)
	}
	if w.creator != "" {
		meta.CreateElement("meta:initial-creator").SetText(w.creator)
		meta.CreateElement("dc:creator").SetText(w.creator)
	}
	stamp := w.created.Format("2006-01-02T15:04:05")
	meta.CreateElement("meta:creation-date").SetText(stamp)
	meta.CreateElement("dc:date").SetText(stamp)
	if w.locale != language.Und {
		meta.CreateElement("dc:language").SetText(w.locale.String())
	}

	var cells int
	for _, t := range w.tables.Values() {
		cells += t.Cells()
	}
	stat := meta.CreateElement("meta:document-statistic")
	stat.CreateAttr("meta:table-count", strconv.Itoa(w.tables.Len()))
	stat.CreateAttr("meta:cell-count", strconv.Itoa(cells))
	stat.CreateAttr("meta:object-count", "0")

	id := meta.CreateElement("meta:user-defined")
	id.CreateAttr("meta:name", "Document ID")
	id.CreateAttr("meta:value-type", "string")
	id.SetText(w.id.String())

	data, err := writeDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to render meta.xml: %w", err)
	}
	return data, nil
}

func configItem(parent *etree.Element, name, typ, value string) {
	item := parent.CreateElement("config:config-item")
	item.CreateAttr("config:name", name)
	item.CreateAttr("config:type", typ)
	item.SetText(value)
}

func (w *Writer) settingsPart() ([]byte, error) {
	doc, root := newDoc("office:document-settings")
	root.CreateAttr("xmlns:office", nsOffice)
	root.CreateAttr("xmlns:config", nsConfig)
	root.CreateAttr("xmlns:ooo", nsOOO)
	root.CreateAttr("office:version", odfVersion)

	set := root.CreateElement("office:settings").CreateElement("config:config-item-set")
	set.CreateAttr("config:name", "ooo:view-settings")

	views := set.CreateElement("config:config-item-map-indexed")
	views.CreateAttr("config:name", "Views")
	view := views.CreateElement("config:config-item-map-entry")
	configItem(view, "ViewId", "string", "view1")

	tables := view.CreateElement("config:config-item-map-named")
	tables.CreateAttr("config:name", "Tables")
	for _, t := range w.tables.Values() {
		settings := t.ViewSettings()
		if len(settings) == 0 {
			continue
		}
		entry := tables.CreateElement("config:config-item-map-entry")
		entry.CreateAttr("config:name", t.Name())
		for _, s := range settings {
			configItem(entry, s.Name, s.Type, s.Value)
		}
	}
	if w.active != "" {
		configItem(view, "ActiveTable", "string", w.active)
	}

	data, err := writeDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to render settings.xml: %w", err)
	}
	return data, nil
}

func manifestPart() ([]byte, error) {
	doc, root := newDoc("manifest:manifest")
	root.CreateAttr("xmlns:manifest", nsManifest)
	root.CreateAttr("manifest:version", odfVersion)

	entry := root.CreateElement("manifest:file-entry")
	entry.CreateAttr("manifest:full-path", "/")
	entry.CreateAttr("manifest:version", odfVersion)
	entry.CreateAttr("manifest:media-type", MimeType)
	for _, name := range manifestParts {
		entry := root.CreateElement("manifest:file-entry")
		entry.CreateAttr("manifest:full-path", name)
		entry.CreateAttr("manifest:media-type", "text/xml")
	}

	data, err := writeDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to render manifest: %w", err)
	}
	return data, nil
}
