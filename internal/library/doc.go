// Package library knows the shape of the target tree: where a file dated on a
// given day belongs, when an existing file counts as the same file, and which
// sibling name to use when it does not.
//
// Layout:
//
//	<root>/<year>/<month>/<day>/<filename>
//
// Month and day are plain decimal numbers ("3", not "03"). Filenames are kept
// verbatim. Collisions are resolved by probing <stem>_1<ext> .. <stem>_255<ext>
// and then falling back to the fixed <stem>_RESOLVE<ext> name.
package library
