// internal/adapters/output/html.go
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"netsql/internal/core/domain"
	"netsql/internal/platform/logx"
)

// HeaderCellStyle is applied to every <th> of the aggregate report.
const HeaderCellStyle = "background-color: #bde9ba"

// HTMLWriter escribe el reporte agregado: por cada host, el nombre en negrita
// seguido de su tabla.
type HTMLWriter struct {
	layout Layout
	logger logx.Logger
}

// NewHTMLWriter crea el writer HTML.
func NewHTMLWriter(layout Layout, logger logx.Logger) *HTMLWriter {
	return &HTMLWriter{layout: layout, logger: logger.With("component", "html")}
}

func (w *HTMLWriter) Name() string { return "html" }

// Write renders summary into <report-dir>/<report-name>.html.
func (w *HTMLWriter) Write(ctx context.Context, summary domain.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := w.layout.AggregatePath(summary.Source.ReportName, ".html")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := html.Render(f, BuildHTML(summary)); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	w.logger.Info("html report written", "path", path, "hosts", len(summary.Entries))
	return f.Close()
}

func elem(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// BuildHTML arma el documento completo.
func BuildHTML(summary domain.Summary) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	title := fmt.Sprintf("netsql: %s", summary.Query.String())
	head := appendAll(elem(atom.Head),
		elem(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}),
		appendAll(elem(atom.Title), text(title)),
	)

	body := elem(atom.Body)
	for _, e := range summary.Entries {
		t := e.Full
		if t == nil {
			t = e.Table
		}
		if t == nil {
			continue
		}
		body.AppendChild(appendAll(elem(atom.B), text(e.Host.Address)))
		body.AppendChild(tableNode(t))
	}

	root := appendAll(elem(atom.Html), head, body)
	doc.AppendChild(root)
	return doc
}

func tableNode(t *domain.Table) *html.Node {
	tbl := elem(atom.Table,
		html.Attribute{Key: "border", Val: "1"},
		html.Attribute{Key: "class", Val: "dataframe"},
	)

	hr := elem(atom.Tr)
	for _, h := range t.Headers {
		hr.AppendChild(appendAll(elem(atom.Th, html.Attribute{Key: "style", Val: HeaderCellStyle}), text(h)))
	}
	tbl.AppendChild(appendAll(elem(atom.Thead), hr))

	tbody := elem(atom.Tbody)
	for _, r := range t.Rows {
		tr := elem(atom.Tr)
		for _, v := range r {
			tr.AppendChild(appendAll(elem(atom.Td), text(v)))
		}
		tbody.AppendChild(tr)
	}
	tbl.AppendChild(tbody)
	return tbl
}
