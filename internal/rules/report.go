package rules

import (
	"bytes"
	"html/template"
	"sort"

	"github.com/hopngo/a11y-audit/internal/model"
)

var impactRank = map[string]int{"critical": 0, "serious": 1, "moderate": 2, "minor": 3}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Accessibility violations</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #1a1a1a; }
.violation { border: 1px solid #ccc; border-radius: 4px; padding: 1em; margin-bottom: 1em; }
.critical, .serious { border-left: 6px solid #b00020; }
.moderate { border-left: 6px solid #c77700; }
.minor { border-left: 6px solid #555; }
code, pre { background: #f4f4f4; padding: 0.1em 0.3em; }
pre { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{len .}} accessibility violation(s)</h1>
{{range .}}
<section class="violation {{.Impact}}">
<h2>{{.ID}}{{if .Impact}} ({{.Impact}}){{end}}</h2>
<p>{{.Help}}</p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .HelpURL}}<p><a href="{{.HelpURL}}">Learn more</a></p>{{end}}
{{if .Tags}}<p>Tags: {{range $i, $t := .Tags}}{{if $i}}, {{end}}<code>{{$t}}</code>{{end}}</p>{{end}}
<ol>
{{range .Nodes}}<li>
<p>{{range .Target}}<code>{{.}}</code> {{end}}</p>
{{if .HTML}}<pre>{{.HTML}}</pre>{{end}}
{{if .FailureSummary}}<pre>{{.FailureSummary}}</pre>{{end}}
</li>
{{end}}</ol>
</section>
{{end}}
</body>
</html>
`))

// RenderHTML renders a standalone HTML report, most severe violations first.
func RenderHTML(violations []model.RuleViolation) (string, error) {
	sorted := append([]model.RuleViolation(nil), violations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i].Impact) < rank(sorted[j].Impact)
	})
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, sorted); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rank(impact string) int {
	if r, ok := impactRank[impact]; ok {
		return r
	}
	return len(impactRank)
}
