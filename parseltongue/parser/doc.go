// Package parser turns Parseltongue source into a Python abstract syntax
// tree.
//
// The parser is a packrat PEG parser over the tokens produced by package
// lexer. Each grammar rule is a method returning nil when it does not
// match; alternatives are tried in order and the token position is reset
// between them. Rule results are memoized per position, and left-recursive
// rules grow their result from a seed.
//
// Parsing runs in two passes. The first pass uses only the regular grammar.
// When it fails, the second pass enables the invalid_* rules, which match
// common mistakes and report a SyntaxError with the message CPython would
// print. If none of them applies, a ParseError names the furthest token
// reached.
//
// The accepted language is Python 3.10. WithTargetVersion rejects features
// that arrived after an earlier version, and WithRelaxedColons allows if,
// elif and else headers without a trailing colon.
package parser
