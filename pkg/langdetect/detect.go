// Package langdetect identifies the language of a source file before it is
// indexed. It uses go-enry for extension, shebang and classifier lookups and
// a few cheap patterns for the script family the indexer understands.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as returned by Detect.
const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangJSX        = "jsx"
	LangTSX        = "tsx"
	LangJSON       = "json"
	LangText       = "text"
	langBash       = "bash"
)

// Detect returns the language of a file from its path and content.
// Returns "text" if detection fails or confidence is low.
func Detect(path string, content []byte) string {
	// Strategy 1: an unambiguous extension.
	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
			return normalize(lang)
		}
	}

	if len(content) == 0 {
		return LangText
	}

	// Strategy 2: the shebang line.
	if lang, ok := Interpreter(content); ok {
		return lang
	}

	// Strategy 3: patterns that are highly indicative.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 4: the classifier over the languages likely to be handed to us.
	candidates := []string{
		"JavaScript", "TypeScript", "TSX", "JSON", "Shell", "Python", "Ruby",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// Interpreter returns the language named by the content's shebang line.
func Interpreter(content []byte) (string, bool) {
	lang, safe := enry.GetLanguageByShebang(content)
	if !safe || lang == "" {
		return "", false
	}
	return normalize(lang), true
}

// IsScript returns true for the languages whose ESTree the indexer accepts.
func IsScript(lang string) bool {
	switch lang {
	case LangJavaScript, LangTypeScript, LangJSX, LangTSX:
		return true
	default:
		return false
	}
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	if lang := detectJSON(trimmed); lang != "" {
		return lang
	}
	if lang := detectTypeScript(string(content)); lang != "" {
		return lang
	}
	if lang := detectJavaScript(string(content)); lang != "" {
		return lang
	}

	return ""
}

// detectJSON checks for JSON patterns.
func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) && !bytes.Contains(trimmed, []byte("=>")) {
		return LangJSON
	}
	return ""
}

// detectTypeScript checks for type annotations JavaScript cannot carry.
func detectTypeScript(contentStr string) string {
	if (strings.Contains(contentStr, "interface ") && strings.Contains(contentStr, ": ")) ||
		strings.Contains(contentStr, "): void") ||
		strings.Contains(contentStr, ": string") ||
		strings.Contains(contentStr, ": number") {
		return LangTypeScript
	}
	return ""
}

// detectJavaScript checks for JavaScript patterns.
func detectJavaScript(contentStr string) string {
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") ||
		strings.Contains(contentStr, "function ") ||
		strings.Contains(contentStr, "console.log") ||
		strings.Contains(contentStr, "require(") {
		return LangJavaScript
	}
	return ""
}

// normalize converts go-enry language names to lower-case identifiers.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
