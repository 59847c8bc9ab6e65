package report

import (
	"fmt"
	"html/template"
	"io"

	"austender/internal/models"
)

const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var treemapTemplate = template.Must(template.New("treemap").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
</head>
<body>
  <div id="treemap" style="width:100%;height:90vh;"></div>
  <script>
    Plotly.newPlot("treemap", [{
      type: "treemap",
      labels: {{.Labels}},
      parents: {{.Parents}},
      values: {{.Values}},
      textinfo: "label+value+percent root",
      hovertemplate: "%{label}<br>A$%{value:,.2f}<extra></extra>"
    }], {
      title: {{.Title}},
      margin: { t: 50, l: 25, r: 25, b: 25 }
    });
  </script>
</body>
</html>
`))

type treemapData struct {
	Title     string
	ScriptURL string
	Labels    []string
	Parents   []string
	Values    []float64
}

// TreemapTitle is the chart heading for agency.
func TreemapTitle(agency string) string {
	return fmt.Sprintf("Total Spending by Category - %s", agency)
}

// RenderTreemap writes a self-contained interactive HTML treemap with one
// tile per category, sized by total spend.
func RenderTreemap(w io.Writer, title string, totals []models.CategorySpend) error {
	data := treemapData{
		Title:     title,
		ScriptURL: plotlyCDN,
		Labels:    make([]string, 0, len(totals)),
		Parents:   make([]string, 0, len(totals)),
		Values:    make([]float64, 0, len(totals)),
	}
	for _, t := range totals {
		data.Labels = append(data.Labels, t.Category)
		data.Parents = append(data.Parents, "")
		data.Values = append(data.Values, t.Total.InexactFloat64())
	}

	if err := treemapTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render treemap: %w", err)
	}
	return nil
}
