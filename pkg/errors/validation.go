package errors

import (
	"strings"
	"unicode"
)

// ValidateCellName validates a cell name for use in a polish expression.
// Cell names are single ASCII letters or digits, matching the expression
// alphabet; the characters 'V' and 'H' are reserved as cut operators.
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCell, "cell name cannot be empty")
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return New(ErrCodeInvalidCell, "cell name must be a single character: %q", name)
	}

	r := runes[0]
	if r == 'V' || r == 'H' {
		return New(ErrCodeInvalidCell, "cell name %q is reserved for cut operators", name)
	}
	if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r)) {
		return New(ErrCodeInvalidCell, "cell name must be an ASCII letter or digit: %q", name)
	}

	return nil
}

// ValidateExpressionAlphabet checks that every character of a polish
// expression belongs to the expression alphabet: cut operators 'V' and 'H'
// plus single-character operand names (letters and digits).
//
// This is a lexical check only; structural validity (balloting, duplicate
// operands) is checked by the floorplan package.
func ValidateExpressionAlphabet(npe string) error {
	if npe == "" {
		return New(ErrCodeInvalidExpression, "expression cannot be empty")
	}

	for i, r := range npe {
		if r == 'V' || r == 'H' {
			continue
		}
		if unicode.IsLetter(r) && r <= unicode.MaxASCII {
			continue
		}
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			continue
		}
		return New(ErrCodeInvalidExpression, "invalid character %q at position %d", r, i)
	}

	return nil
}

// ValidateResultID checks that a result identifier is safe to use as a
// filename. IDs arrive from CLI arguments and API paths, so they must be
// simple basenames without path components.
func ValidateResultID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "result id cannot be empty")
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "result id cannot contain path separators")
	}

	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidInput, "result id cannot start with a dot")
	}

	return nil
}
