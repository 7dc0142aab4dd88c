package cities

// aliasSet lists the accepted spellings of one canonical city key.
// The key is always the first variant.
type aliasSet struct {
	key      string
	variants []string
}

// Declaration order matters: when an alias appears in several sets, the
// first set wins.
var aliasTable = []aliasSet{
	{"mumbai", []string{"mumbai", "bombay", "mumbai city"}},
	{"colaba", []string{"colaba", "fort colaba"}},
	{"fort", []string{"fort", "fort mumbai", "mumbai fort"}},
	{"worli", []string{"worli", "worli mumbai"}},
	{"bandra", []string{"bandra", "bandra west", "bandra east"}},
	{"bandra west", []string{"bandra west", "bandra w", "west bandra"}},
	{"bandra east", []string{"bandra east", "bandra e", "east bandra"}},
	{"andheri", []string{"andheri", "andheri west", "andheri east"}},
	{"andheri west", []string{"andheri west", "andheri w", "west andheri"}},
	{"andheri east", []string{"andheri east", "andheri e", "east andheri"}},
	{"borivali", []string{"borivali", "borivali west", "borivali east"}},
	{"borivali west", []string{"borivali west", "borivali w", "west borivali"}},
	{"borivali east", []string{"borivali east", "borivali e", "east borivali"}},
	{"malad", []string{"malad", "malad west", "malad east"}},
	{"malad west", []string{"malad west", "malad w", "west malad"}},
	{"malad east", []string{"malad east", "malad e", "east malad"}},
	{"kandivali", []string{"kandivali", "kandivali west", "kandivali east"}},
	{"kandivali west", []string{"kandivali west", "kandivali w", "west kandivali"}},
	{"kandivali east", []string{"kandivali east", "kandivali e", "east kandivali"}},
	{"ghatkopar", []string{"ghatkopar", "ghatkopar west", "ghatkopar east"}},
	{"ghatkopar west", []string{"ghatkopar west", "ghatkopar w", "west ghatkopar"}},
	{"ghatkopar east", []string{"ghatkopar east", "ghatkopar e", "east ghatkopar"}},
	{"kurla", []string{"kurla", "kurla west", "kurla east"}},
	{"kurla west", []string{"kurla west", "kurla w", "west kurla"}},
	{"kurla east", []string{"kurla east", "kurla e", "east kurla"}},
	{"dadar", []string{"dadar", "dadar west", "dadar east"}},
	{"dadar west", []string{"dadar west", "dadar w", "west dadar"}},
	{"dadar east", []string{"dadar east", "dadar e", "east dadar"}},
	{"santa cruz", []string{"santa cruz", "santa cruz west", "santa cruz east"}},
	{"santa cruz west", []string{"santa cruz west", "santa cruz w", "west santa cruz"}},
	{"santa cruz east", []string{"santa cruz east", "santa cruz e", "east santa cruz"}},
	{"vikhroli", []string{"vikhroli", "vikhroli west", "vikhroli east"}},
	{"vikhroli west", []string{"vikhroli west", "vikhroli w", "west vikhroli"}},
	{"vikhroli east", []string{"vikhroli east", "vikhroli e", "east vikhroli"}},
	{"thane", []string{"thane", "thane west", "thane city", "thane mumbai"}},
	{"thane west", []string{"thane west", "thane w", "west thane"}},
	{"powai", []string{"powai", "hiranandani powai"}},
	{"juhu", []string{"juhu", "juhu beach"}},
	{"versova", []string{"versova", "versova beach"}},
	{"lower parel", []string{"lower parel", "lower", "parel"}},
	{"marine lines", []string{"marine lines", "marine drive"}},
	{"bombay", []string{"bombay", "mumbai"}},
	{"thane city", []string{"thane city", "thane"}},
	{"mumbai central", []string{"mumbai central", "central mumbai"}},

	// Region groupings overlap with the neighbourhoods they contain.
	{"south mumbai", []string{"south mumbai", "colaba", "fort"}},
	{"central mumbai", []string{"central mumbai", "dadar", "lower parel"}},
	{"north mumbai", []string{"north mumbai", "andheri", "borivali", "malad"}},
	{"western mumbai", []string{"western mumbai", "bandra", "juhu", "versova"}},
	{"eastern mumbai", []string{"eastern mumbai", "ghatkopar", "vikhroli", "kurla"}},
}
