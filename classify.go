package rpcdoc

import (
	"strings"
	"unicode"
)

// Verb is the semantic HTTP method assigned to an operation for
// documentation purposes. It is distinct from the transport verb: the RPC
// transport always speaks POST, whatever the documented verb says.
type Verb string

const (
	VerbGet    Verb = "GET"
	VerbPost   Verb = "POST"
	VerbPatch  Verb = "PATCH"
	VerbDelete Verb = "DELETE"
)

// verbRule maps a group of method-name prefixes to a documented verb.
type verbRule struct {
	verb     Verb
	prefixes []string
}

// verbRules is matched in order; the first group containing a matching
// prefix wins. Order matters: some prefixes would be ambiguous across
// groups if the cascade were reordered.
var verbRules = []verbRule{
	{VerbGet, []string{
		"get", "list", "fetch", "find", "read", "retrieve",
		"query", "search", "show", "view", "load",
	}},
	{VerbPost, []string{
		"create", "add", "insert", "save", "register", "new",
		"build", "generate", "submit", "send", "post",
	}},
	{VerbPatch, []string{
		"update", "modify", "patch", "edit", "change", "set",
		"put", "replace", "adjust",
	}},
	{VerbDelete, []string{
		"delete", "remove", "destroy", "drop", "clear",
		"unlink", "unregister",
	}},
	{VerbPost, []string{
		"execute", "run", "perform", "do", "trigger", "invoke",
		"call", "start", "stop", "cancel", "complete", "finish",
		"verify", "validate", "sync", "link", "login", "logout",
	}},
}

// ClassifyVerb infers the documented HTTP verb from a method name.
// It is a total function: names matching no prefix group default to POST,
// the only verb the transport can actually carry.
func ClassifyVerb(methodName string) Verb {
	name := strings.ToLower(methodName)
	for _, rule := range verbRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(name, prefix) {
				return rule.verb
			}
		}
	}
	return VerbPost
}

// authExemptEndpointSubstrings marks whole endpoints whose methods are part
// of an authentication flow and therefore cannot demand a bearer token yet.
var authExemptEndpointSubstrings = []string{"auth", "idp", "login", "register"}

// authExemptMethodPrefixes covers registration and password-reset flows.
var authExemptMethodPrefixes = []string{
	"register",
	"startregistration",
	"finishregistration",
	"verifyregistration",
	"startpasswordreset",
	"verifypasswordreset",
	"finishpasswordreset",
}

// AuthExempt reports whether a method is exempt from the documented bearer
// security requirement even when its endpoint requires authentication.
// Matching is case-insensitive throughout.
func AuthExempt(endpointName, methodName string) bool {
	endpoint := strings.ToLower(endpointName)
	for _, sub := range authExemptEndpointSubstrings {
		if strings.Contains(endpoint, sub) {
			return true
		}
	}

	method := strings.ToLower(methodName)
	if method == "login" || method == "logout" {
		return true
	}
	for _, prefix := range authExemptMethodPrefixes {
		if strings.HasPrefix(method, prefix) {
			return true
		}
	}
	return false
}

// DisplayLabel converts a camelCase method name into a human-readable
// label. Every uppercase letter starts a new word; each word is rendered
// with an initial capital and the rest lowered.
//
// Example: "createUser" becomes "Create User".
func DisplayLabel(methodName string) string {
	var words []string
	var current []rune
	for _, r := range methodName {
		if unicode.IsUpper(r) && len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}

	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
