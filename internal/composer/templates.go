package composer

import (
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
)

var funcs = map[string]any{
	"inc": func(i int) int { return i + 1 },
	"km":  func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
}

const alertText = `{{define "alert.txt"}}{{if .Notify}}🚨 Flood Alert!
Your area ({{.City}}) is at a {{.Risk}} flood risk.
Stay safe!
{{- else}}✅ Flood Status Update
Your area ({{.City}}) is at a {{.Risk}} flood risk. No alert needed.
{{- end}}
{{if .Places}}
Nearest Safe Places:
{{- range $i, $p := .Places}}
{{inc $i}}. {{$p.Name}} ({{$p.Category}}) - {{km $p.DistanceKm}} km
Map: {{$p.MapURL}}
{{- end}}
{{- else}}
Safety Precautions:
{{- range $i, $p := .Precautions}}
{{inc $i}}. {{$p}}
{{- end}}
{{- end}}

Check evacuation routes here: {{.AppURL}}{{end}}`

const broadcastText = `{{define "broadcast.txt"}}🚨 FLOOD ALERT - {{.CityUpper}}
Level: {{.RiskUpper}}

{{.Message}}

Move to higher ground. Avoid flooded areas. Emergency: 108

Stay Safe!{{end}}`

const testText = `{{define "test.txt"}}🧪 TEST FLOOD ALERT - {{.CityUpper}}
This is a test message to verify the flood alert system is working properly.

Stay Safe!{{end}}`

const emergencyHTML = `{{define "emergency"}}
  <h2>Emergency Numbers:</h2>
  <ul>
  {{- range .Emergency}}
    <li>{{.Service}}: {{.Number}}</li>
  {{- end}}
  </ul>{{end}}`

const alertHTML = `{{define "alert.html"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: {{.Colour}};">{{.Heading}}</h1>
  <p>Hi {{.Name}},</p>
{{- if .Notify}}
  <p><strong>Flood risk level: {{.RiskUpper}}</strong></p>
  <p>Your area ({{.City}}) is at a <b>{{.Risk}}</b> flood risk. Please stay safe!</p>
{{- else}}
  <p><strong>Good news! Currently there is LOW flood risk in {{.City}}.</strong></p>
  <p>No alert needed. We'll keep monitoring and will notify you if the situation changes.</p>
{{- end}}
{{- if .Places}}
  <h2>Nearest Safe Places:</h2>
  <ul>
  {{- range .Places}}
    <li><b>{{.Name}}</b> ({{.Category}}) - {{km .DistanceKm}} km<br>
      <a href="{{.MapURL}}">View on Map</a> | <a href="{{.RouteURL}}">Directions</a></li>
  {{- end}}
  </ul>
{{- else}}
  <h2>Safety Precautions:</h2>
  <ol>
  {{- range .Precautions}}
    <li>{{.}}</li>
  {{- end}}
  </ol>
{{- end}}
{{- template "emergency" .}}
  <p>🚧 Check live <a href="{{.AppURL}}">Evacuation Routes</a> to stay safe.</p>
  <p style="color: #6b7280; font-size: 14px;">Alert sent: {{.SentAt}}</p>
</div>{{end}}`

const broadcastHTML = `{{define "broadcast.html"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: {{.Colour}}; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">🚨 FLOOD ALERT - {{.CityUpper}}</h1>
    <p style="margin: 5px 0; font-size: 18px;">Alert Level: {{.RiskUpper}}</p>
  </div>
  <div style="padding: 20px;">
    <h2 style="color: #1f2937;">📢 Emergency Message:</h2>
    <div style="background-color: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; font-size: 16px; line-height: 1.5;">{{.Message}}</p>
    </div>
    <h3 style="color: #dc2626;">🛡️ Safety Instructions:</h3>
    <ol style="color: #374151;">
    {{- range .Precautions}}
      <li>{{.}}</li>
    {{- end}}
    </ol>
{{- template "emergency" .}}
    <p style="color: #6b7280; font-size: 14px;">Alert sent: {{.SentAt}}<br>Location: {{.City}}</p>
  </div>
</div>{{end}}`

const testHTML = `{{define "test.html"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: {{.Colour}}; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">🚨 TEST FLOOD ALERT - {{.CityUpper}}</h1>
    <p style="margin: 5px 0; font-size: 18px;">Alert Level: {{.RiskUpper}} (TEST)</p>
  </div>
  <div style="padding: 20px;">
    <h2 style="color: #1f2937;">📢 This is a Test Alert</h2>
    <p>Heavy rainfall expected in {{.City}} area. Water levels rising in low-lying areas.
      This is a test message to verify the flood alert system is working properly.</p>
    <p style="color: #1e40af; font-weight: bold;">✅ Test Alert Successful! Your flood alert system is working properly.</p>
    <p style="color: #6b7280; font-size: 14px;">Test sent: {{.SentAt}}<br>Location: {{.City}}</p>
  </div>
</div>{{end}}`

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).
			Parse(emergencyHTML + alertHTML + broadcastHTML + testHTML))
	textTemplates = texttemplate.Must(texttemplate.New("text").Funcs(funcs).
			Parse(alertText + broadcastText + testText))
)
