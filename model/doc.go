// Package model provides the resolved document tree produced by parsing a
// WordprocessingML package.
//
// Every node carries effective formatting: style inheritance, document
// defaults and direct formatting have already been folded together, so a
// consumer never needs the style catalog to render a paragraph or run.
//
// # Document Structure
//
// A [Document] is an ordered list of [Section] values. Each section holds its
// page setup, its header and footer parts, and its body [Block] values:
//
//	for _, sec := range doc.Sections {
//	    for _, b := range sec.Blocks {
//	        switch b := b.(type) {
//	        case *model.Paragraph:
//	            fmt.Println(b.Text())
//	        case *model.Table:
//	            fmt.Println(len(b.Rows), "rows")
//	        }
//	    }
//	}
//
// # Blocks and Runs
//
// [Block] is a closed set: [Paragraph] and [Table]. A paragraph holds [Run]
// values in source order, and each run holds [RunChild] values:
//
//   - [Text] - literal text
//   - [Field] - a field instruction and its cached result
//   - [Break] - line, page or column break
//   - [Tab] - tab character
//   - [Symbol] - a symbol-font character
//   - [Drawing] - an image or a vector shape
//
// # Units
//
// Values are kept in the units of the source markup: lengths in twentieths
// of a point (dxa), font sizes in half-points, drawing extents and offsets
// in EMU, and rotation in 60000ths of a degree. Colors are six-digit hex
// strings without a leading '#'.
package model
