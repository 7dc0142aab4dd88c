package risk

import "github.com/rajasatyajit/FloodAlert/internal/models"

const (
	low      = models.RiskLow
	moderate = models.RiskModerate
	high     = models.RiskHigh
)

// cityLevels covers the broad city list used for alerts. Keys are lowercase;
// mixed-case input reaches them through the lowercase retry in Resolve.
var cityLevels = map[string]models.RiskLevel{
	"andheri east":    low,
	"andheri west":    high,
	"bandra east":     moderate,
	"bandra west":     low,
	"borivali east":   high,
	"borivali west":   moderate,
	"colaba":          high,
	"dadar east":      low,
	"dadar west":      high,
	"fort":            low,
	"ghatkopar east":  moderate,
	"ghatkopar west":  high,
	"juhu":            low,
	"kandivali east":  high,
	"kandivali west":  moderate,
	"kurla east":      high,
	"kurla west":      high,
	"lower parel":     moderate,
	"malad east":      low,
	"malad west":      high,
	"marine lines":    low,
	"powai":           moderate,
	"santa cruz east": low,
	"santa cruz west": moderate,
	"thane west":      low,
	"thane":           low,
	"versova":         high,
	"vikhroli east":   low,
	"vikhroli west":   moderate,
	"worli":           high,
	"mumbai":          moderate,
}

// wardLevels is the curated ward list. Keys are Title Case for display and
// use the alias table's spelling so normalized keys resolve.
var wardLevels = map[string]models.RiskLevel{
	"Andheri East":    high,
	"Andheri West":    high,
	"Bandra East":     high,
	"Dadar East":      high,
	"Dadar West":      high,
	"Goregaon East":   high,
	"Juhu":            high,
	"Kurla East":      high,
	"Kurla West":      high,
	"Santa Cruz East": high,
	"Versova":         high,
	"Lower Parel":     high,
	"Sion":            high,
	"Bandra West":     moderate,
	"Borivali East":   moderate,
	"Colaba":          moderate,
	"Ghatkopar East":  moderate,
	"Ghatkopar West":  moderate,
	"Goregaon West":   moderate,
	"Kandivali East":  moderate,
	"Malad East":      moderate,
	"Santa Cruz West": moderate,
	"Vile Parle East": moderate,
	"Vile Parle West": moderate,
	"Worli":           moderate,
	"Matunga":         moderate,
	"Chembur":         moderate,
	"Borivali West":   low,
	"Kandivali West":  low,
	"Malad West":      low,
}
