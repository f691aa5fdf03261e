package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by pipeline stage:
//   - E1xxx: Lex errors
//   - E2xxx: Parse errors
//   - E3xxx: Transform errors
//   - E4xxx: Code generation errors
type ErrorCode string

const (
	// Lex errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unrecognized character

	// Parse errors (E2xxx)
	E2001 ErrorCode = "E2001" // Cannot parse token
	E2002 ErrorCode = "E2002" // Unexpected end of input
	E2003 ErrorCode = "E2003" // Maximum nesting depth exceeded

	// Transform errors (E3xxx)
	E3001 ErrorCode = "E3001" // Unknown node type

	// Code generation errors (E4xxx)
	E4001 ErrorCode = "E4001" // Unknown node type
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unrecognized character",

	E2001: "cannot parse token",
	E2002: "unexpected end of input",
	E2003: "maximum nesting depth exceeded",

	E3001: "unknown node type",

	E4001: "unknown node type",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "lex"
	case '2':
		return "parse"
	case '3':
		return "transform"
	case '4':
		return "codegen"
	default:
		return "unknown"
	}
}
