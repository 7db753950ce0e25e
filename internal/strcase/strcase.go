package strcase

import (
	"go/token"
	"strings"
	"unicode"
)

// Capitalize upper-cases the first letter of name and leaves the rest untouched.
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func ToCamelCase(name string) string {
	if name == "" {
		return name
	}

	firstChar := name[0]
	if firstChar >= 'A' && firstChar <= 'Z' {
		return string(firstChar+32) + name[1:]
	}

	return name
}

func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	var result []rune

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := false
				if i < len(runes)-1 {
					nextLower = unicode.IsLower(runes[i+1])
				}

				if (unicode.IsLower(prev) || nextLower) && result[len(result)-1] != '_' {
					result = append(result, '_')
				}
			}
			r = unicode.ToLower(r)
		}

		if r == '-' || r == ' ' || r == '.' {
			r = '_'
		}

		result = append(result, r)
	}

	return string(result)
}

// ToExported turns an arbitrary schema or operation name into an exported Go
// identifier: separators are dropped and the following letter is upper-cased.
// Names that do not start with a letter are prefixed with "X".
func ToExported(name string) string {
	ident := joinWords(name)
	if ident == "" {
		return ""
	}
	if !unicode.IsLetter([]rune(ident)[0]) {
		ident = "X" + ident
	}
	return Capitalize(ident)
}

// ToUnexported turns a parameter name into an unexported Go identifier that
// does not collide with a Go keyword.
func ToUnexported(name string) string {
	ident := joinWords(name)
	if ident == "" {
		return ""
	}
	if !unicode.IsLetter([]rune(ident)[0]) {
		ident = "p" + ident
	}
	ident = ToCamelCase(ident)
	if token.IsKeyword(ident) {
		ident += "Param"
	}
	return ident
}

func joinWords(name string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = b.Len() > 0
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
