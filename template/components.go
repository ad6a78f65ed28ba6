// Package template renders the XHTML and XML shells of the EPUB package.
package template

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/Kurumilog/teletype-to-epub/model"
)

const xhtmlHeader = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
`

// ContentXHTML renders one text page: chapter body, table of contents or any
// other XHTML document in the spine. Body is trusted markup produced by the
// extractor; only the title is escaped.
func ContentXHTML(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `%s<head>
<title>%s</title>
<link rel="stylesheet" type="text/css" href="../../style.css"/>
</head>
<body>
<div>
%s
</div>
</body>
</html>
`, xhtmlHeader, html.EscapeString(title), body)
		return err
	})
}

// CoverXHTML renders the cover page around a single image reference.
func CoverXHTML(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `%s<head>
<title>Cover</title>
</head>
<body>
<div style="text-align:center;">
<img src="%s" alt="cover"/>
</div>
</body>
</html>
`, xhtmlHeader, html.EscapeString(src))
		return err
	})
}

// ContainerXML renders META-INF/container.xml pointing at content.opf.
func ContainerXML() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`)
		return err
	})
}

// ContentOPF renders the package document from the marshalled metadata,
// manifest and spine blocks.
func ContentOPF(uniqueID string, dc *model.DublinCoreMetadata, manifest *model.Manifest, spine *model.Spine) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		dcXML, err := dc.Marshal()
		if err != nil {
			return err
		}
		manifestXML, err := manifest.Marshal()
		if err != nil {
			return err
		}
		spineXML, err := spine.Marshal()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>
<package version="3.0" unique-identifier="%s" xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
%s
%s
%s
</package>
`, html.EscapeString(uniqueID), dcXML, manifestXML, spineXML)
		return err
	})
}

// TocNCX renders the EPUB2-compatible navigation file.
func TocNCX(title string, head *model.TocNCXHead, navMap *model.NavMap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headXML, err := head.Marshal()
		if err != nil {
			return err
		}
		navXML, err := navMap.Marshal()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
%s
<docTitle><text>%s</text></docTitle>
%s
</ncx>
`, headXML, html.EscapeString(title), navXML)
		return err
	})
}
