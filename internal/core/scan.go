package core

const NotFound = -1

type scanState int

const (
	stateCode scanState = iota
	stateSingle
	stateDouble
	stateTemplate
)

func literalState(c byte) (scanState, bool) {
	switch c {
	case '\'':
		return stateSingle, true
	case '"':
		return stateDouble, true
	case '`':
		return stateTemplate, true
	}
	return stateCode, false
}

func (s scanState) closes(c byte) bool {
	switch s {
	case stateSingle:
		return c == '\''
	case stateDouble:
		return c == '"'
	case stateTemplate:
		return c == '`'
	}
	return false
}

// FindCallEnd returns the index of the parenthesis closing the first call
// opened in text, or NotFound. Parentheses inside quoted or template literals
// are ignored. Regex literals, comments and ${} interpolation are not
// recognised.
func FindCallEnd(text string) int {
	state := stateCode
	escaped := false
	depth := 0

	for i := 0; i < len(text); i++ {
		c := text[i]

		if state == stateCode {
			switch c {
			case ')':
				depth--
				if depth == 0 {
					return i
				}
			case '(':
				depth++
			default:
				if next, ok := literalState(c); ok {
					state = next
				}
			}
			escaped = false
			continue
		}

		switch {
		case state.closes(c) && !escaped:
			state = stateCode
			escaped = false
		case c == '\\':
			escaped = !escaped
		default:
			escaped = false
		}
	}

	return NotFound
}
