package safeplaces

import "github.com/rajasatyajit/FloodAlert/internal/models"

func place(name, category string, lat, lng float64) models.SafePlace {
	return models.SafePlace{Name: name, Category: category, Location: models.Coordinates{Lat: lat, Lng: lng}}
}

var mumbaiPlaces = []models.SafePlace{
	place("Bombay Hospital", "Hospital", 18.9329, 72.8277),
	place("Tata Memorial Hospital", "Hospital", 19.0189, 72.8468),
	place("Chhatrapati Shivaji Maharaj Terminus (CST)", "Railway Station", 18.9401, 72.8348),
	place("Mumbai Central Station", "Railway Station", 18.9666, 72.8213),
	place("Taj Mahal Palace Hotel", "Hotel", 18.9217, 72.8335),
	place("The Leela Mumbai", "Hotel", 19.1066, 72.8687),
	place("St. Xavier's College", "School/Shelter", 18.9416, 72.8272),
	place("Don Bosco School", "School/Shelter", 19.0335, 72.8554),
	place("BKC Ground", "Shelter", 19.0560, 72.8631),
	place("Chhatrapati Shivaji Maharaj International Airport", "Airport", 19.0886, 72.8679),
}

var mumbaiCities = map[string]models.Coordinates{
	"colaba":          {Lat: 18.9151, Lng: 72.8141},
	"fort":            {Lat: 18.9353, Lng: 72.8370},
	"worli":           {Lat: 19.0169, Lng: 72.8170},
	"andheri east":    {Lat: 19.1197, Lng: 72.8468},
	"andheri west":    {Lat: 19.1301, Lng: 72.8331},
	"bandra east":     {Lat: 19.0596, Lng: 72.8405},
	"bandra west":     {Lat: 19.0544, Lng: 72.8402},
	"borivali east":   {Lat: 19.2312, Lng: 72.8566},
	"borivali west":   {Lat: 19.2360, Lng: 72.8331},
	"dadar east":      {Lat: 19.0176, Lng: 72.8495},
	"dadar west":      {Lat: 19.0168, Lng: 72.8424},
	"ghatkopar east":  {Lat: 19.0855, Lng: 72.9089},
	"ghatkopar west":  {Lat: 19.0863, Lng: 72.9075},
	"juhu":            {Lat: 19.1021, Lng: 72.8265},
	"kandivali east":  {Lat: 19.2058, Lng: 72.8656},
	"kandivali west":  {Lat: 19.2001, Lng: 72.8424},
	"kurla east":      {Lat: 19.0726, Lng: 72.8795},
	"kurla west":      {Lat: 19.0729, Lng: 72.8789},
	"lower parel":     {Lat: 18.9930, Lng: 72.8303},
	"malad east":      {Lat: 19.1864, Lng: 72.8611},
	"malad west":      {Lat: 19.1850, Lng: 72.8410},
	"marine lines":    {Lat: 18.9430, Lng: 72.8261},
	"powai":           {Lat: 19.1177, Lng: 72.9060},
	"santa cruz east": {Lat: 19.0820, Lng: 72.8512},
	"santa cruz west": {Lat: 19.0823, Lng: 72.8402},
	"thane west":      {Lat: 19.2183, Lng: 72.9781},
	"thane":           {Lat: 19.2183, Lng: 72.9781},
	"versova":         {Lat: 19.1343, Lng: 72.8128},
	"vikhroli east":   {Lat: 19.1121, Lng: 72.9289},
	"vikhroli west":   {Lat: 19.1110, Lng: 72.9225},
	"mumbai":          {Lat: 19.0760, Lng: 72.8777},
}
