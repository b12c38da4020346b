package cover

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/roach88/covergen/internal/layer"
)

// DomainDocument prefixes document digests. The version suffix allows the
// digest scheme to change without colliding with recorded baselines.
const DomainDocument = "covergen/document/v1"

// partSeparator joins the header, comment, defs, fragments and footer.
const partSeparator = "\n\n"

// Document is one assembled cover. It is built once by Compose and never
// mutated afterwards.
type Document struct {
	Slug   string
	Title  string
	Theme  string
	Symbol layer.SymbolKind
	Width  int
	Height int

	Defs      string
	Fragments []layer.Fragment
}

// String serialises the document.
func (d *Document) String() string {
	parts := make([]string, 0, len(d.Fragments)+4)
	parts = append(parts,
		fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
			d.Width, d.Height, d.Width, d.Height),
		fmt.Sprintf("  <!-- Cover: %s -->", sanitizeComment(d.Title)),
		d.Defs,
	)
	for _, f := range d.Fragments {
		parts = append(parts, f.SVG)
	}
	parts = append(parts, "</svg>")
	return strings.Join(parts, partSeparator)
}

// Bytes returns the serialised document.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// Fragment returns the named layer fragment.
func (d *Document) Fragment(name string) (layer.Fragment, bool) {
	for _, f := range d.Fragments {
		if f.Name == name {
			return f, true
		}
	}
	return layer.Fragment{}, false
}

// Digest returns the hex SHA-256 of the serialised document with domain
// separation: SHA256(domain + 0x00 + document).
func (d *Document) Digest() string {
	return DigestBytes(d.Bytes())
}

// DigestBytes computes the document digest of already serialised output.
func DigestBytes(data []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainDocument))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FileName is the conventional output name for a cover.
func (d *Document) FileName() string {
	return d.Slug + "-cover.svg"
}
