package dumputil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"

	"odsw/ods"
	"odsw/utils/debug"
)

const manifestName = "META-INF/manifest.xml"

// Entry describes single zip entry of the package.
type Entry struct {
	Name           string
	Method         uint16
	Size           uint64
	Compressed     uint64
	DataDescriptor bool
}

// Package is ODS document loaded into memory.
type Package struct {
	Path    string
	Entries []Entry
	parts   map[string][]byte
}

// ReadPackage loads every part of the document at path.
func ReadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if kind, err := filetype.Match(data); err != nil || (kind.Extension != "zip" && kind.Extension != "ods") {
		return nil, fmt.Errorf("%s is not a zip package", path)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	p := &Package{Path: path, parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		p.Entries = append(p.Entries, Entry{
			Name:           f.Name,
			Method:         f.Method,
			Size:           f.UncompressedSize64,
			Compressed:     f.CompressedSize64,
			DataDescriptor: f.Flags&0x8 != 0,
		})
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", f.Name, err)
		}
		p.parts[f.Name] = b
	}
	return p, nil
}

// Part returns content of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	b, ok := p.parts[name]
	return b, ok
}

// XMLParts returns names of parts with XML content in package order.
func (p *Package) XMLParts() []string {
	var names []string
	for _, e := range p.Entries {
		if b := p.parts[e.Name]; len(b) > 0 && bytes.HasPrefix(bytes.TrimSpace(b), []byte("<")) {
			names = append(names, e.Name)
		}
	}
	return names
}

// Problems lists package conformance issues, empty when none are found.
func (p *Package) Problems() []string {
	var out []string
	if len(p.Entries) == 0 || p.Entries[0].Name != "mimetype" {
		out = append(out, "mimetype is not the first entry")
	} else {
		first := p.Entries[0]
		if first.Method != zip.Store {
			out = append(out, "mimetype is compressed")
		}
		if first.DataDescriptor {
			out = append(out, "mimetype has data descriptor")
		}
		if mt := string(p.parts["mimetype"]); mt != ods.MimeType {
			out = append(out, "unexpected mimetype "+strconv.Quote(mt))
		}
	}
	for _, name := range []string{"content.xml", "styles.xml", manifestName} {
		if _, ok := p.parts[name]; !ok {
			out = append(out, name+" is missing")
		}
	}

	listed, err := p.manifestPaths()
	if err != nil {
		return append(out, err.Error())
	}
	for _, e := range p.Entries {
		if e.Name == "mimetype" || e.Name == manifestName {
			continue
		}
		if !slices.Contains(listed, e.Name) {
			out = append(out, e.Name+" is not listed in manifest")
		}
	}
	for _, name := range listed {
		if _, ok := p.parts[name]; !ok && name != "/" {
			out = append(out, "manifest lists missing part "+name)
		}
	}
	return out
}

func (p *Package) manifestPaths() ([]string, error) {
	b, ok := p.parts[manifestName]
	if !ok {
		return nil, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("unable to parse manifest: %w", err)
	}
	var paths []string
	for _, e := range doc.FindElements("//manifest:file-entry") {
		paths = append(paths, e.SelectAttrValue("manifest:full-path", ""))
	}
	return paths, nil
}

// PartsReport renders package entries.
func (p *Package) PartsReport() string {
	tw := debug.NewTreeWriter()
	d := tw.Section(0, p.Path, len(p.Entries))
	for _, e := range p.Entries {
		method := "deflate"
		if e.Method == zip.Store {
			method = "store"
		}
		tw.Line(d, "%s %s %d/%d descriptor=%t", e.Name, method, e.Compressed, e.Size, e.DataDescriptor)
	}
	if problems := p.Problems(); len(problems) > 0 {
		tw.Names(tw.Section(0, "problems", len(problems)), problems...)
	}
	return tw.String()
}

// IndentedXML returns named part re-indented for reading.
func (p *Package) IndentedXML(name string) ([]byte, error) {
	b, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("no part %s", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}
	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StylesReport lists styles, data styles and tables of the document.
func (p *Package) StylesReport() (string, error) {
	tw := debug.NewTreeWriter()
	for _, name := range []string{"styles.xml", "content.xml"} {
		b, ok := p.parts[name]
		if !ok {
			continue
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(b); err != nil {
			return "", fmt.Errorf("unable to parse %s: %w", name, err)
		}
		tw.Line(0, "%s", name)
		for _, section := range []string{"office:styles", "office:automatic-styles", "office:master-styles"} {
			el := doc.FindElement("//" + section)
			if el == nil {
				continue
			}
			children := el.ChildElements()
			d := tw.Section(1, section, len(children))
			for _, c := range children {
				if family := c.SelectAttrValue("style:family", ""); family != "" {
					tw.Line(d, "%s %s family=%s", c.FullTag(), c.SelectAttrValue("style:name", ""), family)
					continue
				}
				tw.Line(d, "%s %s", c.FullTag(), c.SelectAttrValue("style:name", ""))
			}
		}
		tables := doc.FindElements("//table:table")
		if len(tables) == 0 {
			continue
		}
		d := tw.Section(1, "tables", len(tables))
		for _, t := range tables {
			tw.Line(d, "%s rows=%d columns=%d", t.SelectAttrValue("table:name", ""), repeated(t, "table:table-row", "table:number-rows-repeated"),
				repeated(t, "table:table-column", "table:number-columns-repeated"))
		}
	}
	return tw.String(), nil
}

// repeated counts elements with tag under parent honoring repetition
// attribute.
func repeated(parent *etree.Element, tag, attr string) int {
	n := 0
	for _, e := range parent.FindElements(".//" + tag) {
		if v, err := strconv.Atoi(e.SelectAttrValue(attr, "1")); err == nil && v > 0 {
			n += v
			continue
		}
		n++
	}
	return n
}
