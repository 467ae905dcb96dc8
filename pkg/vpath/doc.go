// Package vpath provides immutable, backend-independent filesystem paths.
//
// A Path is a head discriminator (absolute root, drive label, UNC host, or
// relative to the current directory) followed by a sequence of elements.
// Parsing accepts both '/' and '\' separators and normalizes "." and ".."
// away. Rendering takes a Separator so the same value can be shown in
// forward-slash, backslash or host-native form.
//
// # Example Usage
//
//	p := vpath.MustParse("/one/two/../three")
//	p.String()                 // "/one/three"
//	p.Format(vpath.Backward)   // "\one\three"
//
//	rel, _ := vpath.MustParse("/a/b/c").PathFrom(vpath.MustParse("/a/x"))
//	rel.String()               // "../b/c"
//
// # Thread Safety
//
// Paths are immutable and safe for concurrent use. The cached hash is stored
// atomically.
package vpath
