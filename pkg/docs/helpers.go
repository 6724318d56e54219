package docs

import "strings"

//go:generate qtc -file=markdown.qtpl

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func cell(s string) string {
	return cellEscaper.Replace(s)
}
