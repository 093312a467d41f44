// Package pathlist is the PATH value engine: it converts registry bytes to
// text and text to an ordered entry list, expands %NAME% tokens, derives the
// comparison keys used for deduplication, picks the registry string subtype
// for a write, and holds the editable per-scope list.
//
// Every function here is total over its inputs: malformed tokens and invalid
// UTF-16 are passed through or replaced, never reported as errors. The only
// error the package returns is the move rejection while a filter is active.
package pathlist
