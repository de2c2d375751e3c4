// Package textutils provides named constants for common ASCII characters
// and the handful of short strings the rest of the module builds messages
// and paths from, so call sites read as names instead of rune literals.
package textutils

const (
	EmptyStr        = ""
	WhiteSpaceStr   = " "
	NewLineString   = "\n"
	ColonStr        = ":"
	PeriodStr       = "."
	SemiColonStr    = ";"
	EqualStr        = "="
	ForwardSlashStr = "/"
	CloseBraceStr   = "}"
)

// Untyped rune/byte constants — left without an explicit type so they
// compare cleanly against both byte (string indexing) and rune (range
// over string) call sites.
const (
	AUpperChar = 'A'
	ZUpperChar = 'Z'
	ALowerChar = 'a'
	ZLowerChar = 'z'

	ColonChar        = ':'
	EqualChar        = '='
	HashChar         = '#'
	DollarChar       = '$'
	BackSlashChar    = '\\'
	ForwardSlashChar = '/'
	OpenBraceChar    = '{'
	CloseBraceChar   = '}'
)
