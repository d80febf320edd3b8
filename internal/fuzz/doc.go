// Package fuzztests houses Go fuzz harnesses for the lexer. They load
// arbitrary bytes into a FileSet and check that lexing either yields tokens
// whose spans cover the input cleanly or fails with exactly one diagnostic.
//
// Seeds come from testdata/*.calc at the repository root plus a fixed list of
// edge cases.
package fuzztests
