package respond

import "regexp"

// Patterns for secrets that can leak into provider or transport error
// messages. Each masked before the message reaches a log line.
var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	urlCredPattern      = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
)

// SanitizeError masks API keys and URL-embedded credentials in an error
// message so it can be logged safely.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}

// Sanitize masks known secret shapes in s.
func Sanitize(s string) string {
	s = anthropicKeyPattern.ReplaceAllString(s, "sk-ant-****")
	s = openaiKeyPattern.ReplaceAllString(s, "sk-****")
	s = urlCredPattern.ReplaceAllString(s, "://$1:****@")
	return s
}
