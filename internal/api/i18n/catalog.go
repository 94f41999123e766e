// Package i18n resolves stable error codes into human-readable messages for
// the locale a request asked for. The built-in catalog ships English (the
// default) and German; deployments can swap in their own catalog, the API
// layer only depends on the Resolve contract.
package i18n

import "strings"

// Stable machine-readable error codes. These are part of the API contract
// and never change per locale.
const (
	CodeInvalidCredentials = "auth.invalid_credentials"
	CodeAccountDisabled    = "auth.account_disabled"
	CodeInvalidToken       = "auth.invalid_token"
	CodeTokenExpired       = "auth.token_expired"
	CodeTooManyAttempts    = "auth.too_many_attempts"
	CodeInvalidRequest     = "request.invalid"
	CodeServerError        = "server.error"
)

const defaultLocale = "en"

// Catalog maps locale → code → message.
type Catalog struct {
	messages map[string]map[string]string
}

// NewCatalog builds a catalog from per-locale message maps. Locale keys are
// lowercase base language tags ("en", "de").
func NewCatalog(messages map[string]map[string]string) *Catalog {
	return &Catalog{messages: messages}
}

// Default returns the built-in English/German catalog.
func Default() *Catalog {
	return NewCatalog(map[string]map[string]string{
		"en": {
			CodeInvalidCredentials: "Invalid username or password.",
			CodeAccountDisabled:    "This account is disabled.",
			CodeInvalidToken:       "The provided token is invalid.",
			CodeTokenExpired:       "The provided token has expired.",
			CodeTooManyAttempts:    "Too many login attempts. Try again later.",
			CodeInvalidRequest:     "The request is invalid.",
			CodeServerError:        "An internal error occurred.",
		},
		"de": {
			CodeInvalidCredentials: "Benutzername oder Passwort ist ungültig.",
			CodeAccountDisabled:    "Dieses Konto ist deaktiviert.",
			CodeInvalidToken:       "Das übermittelte Token ist ungültig.",
			CodeTokenExpired:       "Das übermittelte Token ist abgelaufen.",
			CodeTooManyAttempts:    "Zu viele Anmeldeversuche. Bitte später erneut versuchen.",
			CodeInvalidRequest:     "Die Anfrage ist ungültig.",
			CodeServerError:        "Ein interner Fehler ist aufgetreten.",
		},
	})
}

// Resolve returns the message for code in the requested locale, falling back
// to English and finally to the code itself when no translation exists.
func (c *Catalog) Resolve(locale, code string) string {
	for _, loc := range []string{normalize(locale), defaultLocale} {
		if msgs, ok := c.messages[loc]; ok {
			if msg, ok := msgs[code]; ok {
				return msg
			}
		}
	}
	return code
}

// MatchLocale picks the first supported base language from an Accept-Language
// header value. Quality weights are ignored: the header's own order wins,
// which is what browsers send anyway.
func (c *Catalog) MatchLocale(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := part
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		loc := normalize(tag)
		if _, ok := c.messages[loc]; ok {
			return loc
		}
	}
	return defaultLocale
}

// normalize reduces a language tag to its lowercase base: "de-DE" → "de".
func normalize(tag string) string {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
