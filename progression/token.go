package progression

const (
	TokenTypeNumber = iota
	TokenTypeComma
	TokenTypeEllipsis
	TokenTypeInf
	TokenTypeInvalid
	TokenTypeEOF
)

var TokenMapping = map[TokenType]string{
	TokenTypeNumber:   "<number>",
	TokenTypeComma:    ",",
	TokenTypeEllipsis: "...",
	TokenTypeInf:      "Inf",
	TokenTypeInvalid:  "<invalid>",
	TokenTypeEOF:      "<eof>",
}

type TokenType int

func (t TokenType) String() string {
	return TokenMapping[t]
}

type Token struct {
	TokenType TokenType
	StringVal string
	FloatVal  float64
	// Pos is the byte offset of the token in the scanned input.
	Pos int
}

type TokenList []Token

func (in TokenList) at(index int) *Token {
	if index < len(in) {
		return &in[index]
	}
	return nil
}
