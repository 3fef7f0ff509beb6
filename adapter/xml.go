package adapter

import (
	"github.com/beevik/etree"

	"github.com/erraggy/schemamap/schemaerrors"
)

// XMLOptions controls XML output.
type XMLOptions struct {
	// Pretty indents nested elements by two spaces
	Pretty bool
	// Declaration prepends an <?xml version="1.0"?> declaration
	Declaration bool
}

// XML loads and dumps XML documents.
type XML struct{}

// Load parses data into an etree document.
func (XML) Load(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding XML", Cause: err}
	}
	return doc, nil
}

// Dump renders doc. The input document is not modified.
func (XML) Dump(doc *etree.Document, opts XMLOptions) ([]byte, error) {
	out := etree.NewDocument()
	if opts.Declaration {
		out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}
	if root := doc.Root(); root != nil {
		out.SetRoot(root.Copy())
	}
	if opts.Pretty {
		out.Indent(2)
	}
	return out.WriteToBytes()
}
