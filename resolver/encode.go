package resolver

import (
	"net/url"
	"strings"
)

// componentFixups turns url.QueryEscape output into URI-component form:
// spaces become %20 and the marks !'()* stay literal.
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a single URI component.
func EncodeComponent(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}
