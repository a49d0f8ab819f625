package ingest

const (
	TokenTypeLBrace = iota
	TokenTypeRBrace
	TokenTypeString
	TokenTypeName
	TokenTypeEquals
	TokenTypeComma
	TokenTypeEOF
)

var TokenMapping = map[TokenType]string{
	TokenTypeLBrace: "{",
	TokenTypeRBrace: "}",
	TokenTypeString: "<string>",
	TokenTypeName:   "<name>",
	TokenTypeEquals: "=",
	TokenTypeComma:  ",",
	TokenTypeEOF:    "<eof>",
}

type TokenType int

type Token struct {
	TokenType TokenType
	StringVal string
	// Pos is the byte offset of the token in the selector.
	Pos int
}

type TokenList []Token

func (in TokenList) at(index int) *Token {
	if index < len(in) {
		return &in[index]
	}
	return nil
}
