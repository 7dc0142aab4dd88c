// Package composer renders flood alert messages for email and SMS.
package composer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/internal/risk"
	"github.com/rajasatyajit/FloodAlert/internal/safeplaces"
)

// DefaultAppURL is the public evacuation route map.
const DefaultAppURL = "https://akashkeote.github.io/flood/"

var precautions = []string{
	"Move to higher ground immediately.",
	"Avoid walking or driving through flood waters.",
	"Keep a flashlight, battery, and emergency supplies handy.",
	"Disconnect electrical appliances if water enters your home.",
	"Stay tuned to official updates and helpline numbers.",
}

type emergencyNumber struct {
	Service string
	Number  string
}

var emergencyNumbers = []emergencyNumber{
	{"Fire", "101"},
	{"Police", "100"},
	{"Ambulance", "108"},
}

// ist is used for the human-readable timestamp in messages.
var ist = time.FixedZone("IST", 5*60*60+30*60)

// Precautions returns the fallback safety checklist.
func Precautions() []string {
	out := make([]string, len(precautions))
	copy(out, precautions)
	return out
}

// Colour is the heading colour for a city alert.
func Colour(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return "red"
	case models.RiskModerate:
		return "orange"
	default:
		return "green"
	}
}

// BannerColour is the banner background for operator broadcasts.
func BannerColour(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return "#dc2626"
	case models.RiskModerate:
		return "#d97706"
	default:
		return "#059669"
	}
}

// Subject is the email subject line for a city alert.
func Subject(level models.RiskLevel, city string) string {
	switch level {
	case models.RiskHigh:
		return "🚨 HIGH FLOOD ALERT - " + city
	case models.RiskModerate:
		return "⚠️ MODERATE FLOOD ALERT - " + city
	default:
		return "✅ Flood Status Update - " + city
	}
}

// Alert is a rendered message ready for dispatch.
type Alert struct {
	City          string                   `json:"city"`
	CanonicalCity string                   `json:"canonical_city"`
	RiskLevel     models.RiskLevel         `json:"risk_level"`
	Notify        bool                     `json:"notify"`
	Places        []models.RankedSafePlace `json:"places"`
	EmailSubject  string                   `json:"email_subject"`
	EmailHTML     string                   `json:"email_html"`
	SMSText       string                   `json:"sms_text"`
}

// Options tunes a Composer. Zero values fall back to defaults.
type Options struct {
	TopN   int
	AppURL string
	Clock  clockwork.Clock
}

// Composer combines risk and safe-place data into messages.
type Composer struct {
	resolver *risk.Resolver
	ranker   *safeplaces.Ranker
	topN     int
	appURL   string
	clock    clockwork.Clock
}

// New returns a Composer.
func New(resolver *risk.Resolver, ranker *safeplaces.Ranker, opts Options) *Composer {
	if opts.TopN <= 0 {
		opts.TopN = safeplaces.DefaultTopN
	}
	if opts.AppURL == "" {
		opts.AppURL = DefaultAppURL
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Composer{
		resolver: resolver,
		ranker:   ranker,
		topN:     opts.TopN,
		appURL:   opts.AppURL,
		clock:    opts.Clock,
	}
}

type view struct {
	City        string
	CityUpper   string
	Name        string
	Risk        models.RiskLevel
	RiskUpper   string
	Colour      string
	Heading     string
	Notify      bool
	Places      []models.RankedSafePlace
	Precautions []string
	Emergency   []emergencyNumber
	Message     string
	AppURL      string
	SentAt      string
}

func (c *Composer) baseView(city string, level models.RiskLevel) view {
	return view{
		City:        city,
		CityUpper:   strings.ToUpper(city),
		Risk:        level,
		RiskUpper:   strings.ToUpper(string(level)),
		Precautions: precautions,
		Emergency:   emergencyNumbers,
		AppURL:      c.appURL,
		SentAt:      c.clock.Now().In(ist).Format("02 Jan 2006 15:04 MST"),
	}
}

func render(v view, htmlName, textName string) (string, string, error) {
	var h, t bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&h, htmlName, v); err != nil {
		return "", "", fmt.Errorf("render %s: %w", htmlName, err)
	}
	if err := textTemplates.ExecuteTemplate(&t, textName, v); err != nil {
		return "", "", fmt.Errorf("render %s: %w", textName, err)
	}
	return h.String(), t.String(), nil
}

// Compose renders the city alert for one recipient. Moderate and high risk
// set Notify; low risk renders an informational update with Notify unset.
// The safe-place section falls back to the precaution checklist whenever the
// city has no coordinates or no place is ranked.
func (c *Composer) Compose(cityRaw, userName string) (Alert, error) {
	city := strings.TrimSpace(cityRaw)
	key := cities.Normalize(city)
	level := c.resolver.Resolve(key)
	places := c.ranker.Rank(key, c.topN)

	v := c.baseView(city, level)
	v.Name = userName
	if v.Name == "" {
		v.Name = "there"
	}
	v.Notify = level.RequiresAlert()
	v.Colour = Colour(level)
	v.Heading = Subject(level, city)
	if len(places) > 0 {
		v.Places = places
	}

	html, text, err := render(v, "alert.html", "alert.txt")
	if err != nil {
		return Alert{}, err
	}
	return Alert{
		City:          city,
		CanonicalCity: key,
		RiskLevel:     level,
		Notify:        v.Notify,
		Places:        places,
		EmailSubject:  v.Heading,
		EmailHTML:     html,
		SMSText:       text,
	}, nil
}

// ComposeBroadcast renders an operator-written message at an explicit level.
func (c *Composer) ComposeBroadcast(cityRaw, message string, level models.RiskLevel) (Alert, error) {
	city := strings.TrimSpace(cityRaw)
	if !level.Valid() {
		level = models.RiskModerate
	}

	v := c.baseView(city, level)
	v.Notify = true
	v.Colour = BannerColour(level)
	v.Message = message

	html, text, err := render(v, "broadcast.html", "broadcast.txt")
	if err != nil {
		return Alert{}, err
	}
	return Alert{
		City:          city,
		CanonicalCity: cities.Normalize(city),
		RiskLevel:     level,
		Notify:        true,
		EmailSubject:  fmt.Sprintf("🚨 URGENT: Flood Alert for %s - %s Level", city, v.RiskUpper),
		EmailHTML:     html,
		SMSText:       text,
	}, nil
}

// ComposeTest renders the delivery check message.
func (c *Composer) ComposeTest(cityRaw string) (Alert, error) {
	city := strings.TrimSpace(cityRaw)
	if city == "" {
		city = "Mumbai"
	}

	v := c.baseView(city, models.RiskModerate)
	v.Colour = BannerColour(models.RiskModerate)

	html, text, err := render(v, "test.html", "test.txt")
	if err != nil {
		return Alert{}, err
	}
	return Alert{
		City:          city,
		CanonicalCity: cities.Normalize(city),
		RiskLevel:     models.RiskModerate,
		Notify:        true,
		EmailSubject:  "🧪 TEST: Flood Alert System for " + city,
		EmailHTML:     html,
		SMSText:       text,
	}, nil
}
