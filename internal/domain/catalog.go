package domain

import "fmt"

// Garment is one entry of the clothing catalog.
type Garment int

const (
	HalfCottonTShirt Garment = iota
	FullCottonPant
	CottonKurta
	Salwar
	Shirt
	Maxi
	WinterJacket
	UpperTracksuit
	TracksuitTrouser
	PolyesterShorts
	WoolenHighnecks
	ThickTrousers
	WoolenSweaters
	WoolenCaps
	Sando
	Dhoti
	HeavyWinterJackets
	LightWinterJackets
	SutiSari
	FurredTrousers
	ThickJackets
	PermeableCottonShirt
	Jumper
	Shawl
	ThinSweaters
	ThermocoatUpper
	ThermocoatLowers
	Gloves
	ThinWoolenUppers
	ThinWoolenLowers
	ThickWoolenUppers
	ThickWoolenLowers
	WoolenHoodie
	ThinSleevelessCoat
	Kamij
	WoolenCholo
	Fariya
	Patuki
	Pachhyaura
	MensUnderwear
	WomensUnderwear
	MensUpperInnerwear
	WomensUpperInnerwear
	Blouses
	Socks

	garmentCount = iota
)

// Activity is one entry of the activity catalog.
type Activity int

const (
	Sleeping Activity = iota
	Reclining
	SeatedQuiet
	StandingRelaxed
	Walking32
	Walking43
	Walking64
	ReadingSeated
	Writing
	Typing
	FilingSeated
	FilingStanding
	WalkingAboutOffice
	LiftingPacking
	DrivingCar
	DrivingAircraftRoutine
	AircraftInstrumentLanding
	AircraftCombat
	HeavyVehicle
	Cooking
	Housecleaning
	SeatedHeavyLimbMovement
	MachineWorkSawing
	MachineWorkLight
	MachineWorkHeavy
	Handling50kgBags
	PickAndShovelWork
	DancingSocial
	CalisthenicsExercise
	TennisSingles
	Basketball
	WrestlingCompetitive

	activityCount = iota
)

type catalogEntry struct {
	name  string
	value float64
}

// garmentTable holds display names and insulation in CLO units.
var garmentTable = [garmentCount]catalogEntry{
	HalfCottonTShirt:     {"Half Cotton T-Shirt", 0.36},
	FullCottonPant:       {"Full Cotton Pant", 0.24},
	CottonKurta:          {"Cotton Kurta", 0.36},
	Salwar:               {"Salwar", 0.28},
	Shirt:                {"Shirt", 0.61},
	Maxi:                 {"Maxi", 0.45},
	WinterJacket:         {"Winter Jacket", 0.96},
	UpperTracksuit:       {"Upper Tracksuit", 0.34},
	TracksuitTrouser:     {"Tracksuit Trouser", 0.28},
	PolyesterShorts:      {"Polyester Shorts", 0.06},
	WoolenHighnecks:      {"Woolen Highnecks", 0.34},
	ThickTrousers:        {"Thick Trousers", 0.28},
	WoolenSweaters:       {"Woolen Sweaters", 0.34},
	WoolenCaps:           {"Woolen Caps", 0.10},
	Sando:                {"Sando", 0.13},
	Dhoti:                {"Dhoti", 0.28},
	HeavyWinterJackets:   {"Heavy Winter Jackets", 1.00},
	LightWinterJackets:   {"Light Winter Jackets", 0.96},
	SutiSari:             {"Suti Sari", 0.67},
	FurredTrousers:       {"Furred Trousers", 0.28},
	ThickJackets:         {"Thick Jackets", 0.96},
	PermeableCottonShirt: {"Permeable Cotton Shirt", 0.61},
	Jumper:               {"Jumper", 0.34},
	Shawl:                {"Shawl", 0.20},
	ThinSweaters:         {"Thin Sweaters", 0.20},
	ThermocoatUpper:      {"Thermocoat Upper", 1.00},
	ThermocoatLowers:     {"Thermocoat Lowers", 0.28},
	Gloves:               {"Gloves", 0.00},
	ThinWoolenUppers:     {"Thin Woolen Uppers", 0.20},
	ThinWoolenLowers:     {"Thin Woolen Lowers", 0.28},
	ThickWoolenUppers:    {"Thick Woolen Uppers", 0.34},
	ThickWoolenLowers:    {"Thick Woolen Lowers", 0.28},
	WoolenHoodie:         {"Woolen Hoodie", 0.34},
	ThinSleevelessCoat:   {"Thin Sleeveless Coat", 0.20},
	Kamij:                {"Kamij", 0.61},
	WoolenCholo:          {"Woolen Cholo", 0.34},
	Fariya:               {"Fariya", 0.30},
	Patuki:               {"Patuki", 0.02},
	Pachhyaura:           {"Pachhyaura", 0.20},
	MensUnderwear:        {"Men's underwear", 0.05},
	WomensUnderwear:      {"Women's underwear", 0.03},
	MensUpperInnerwear:   {"Men's Upper Innerwear", 0.08},
	WomensUpperInnerwear: {"Women's Upper Innerwear", 0.20},
	Blouses:              {"Blouses", 0.27},
	Socks:                {"Socks", 0.05},
}

// activityTable holds display names and metabolic rate in MET units.
var activityTable = [activityCount]catalogEntry{
	Sleeping:                  {"Sleeping", 0.7},
	Reclining:                 {"Reclining", 0.8},
	SeatedQuiet:               {"Seated, quiet", 1.0},
	StandingRelaxed:           {"Standing, relaxed", 1.2},
	Walking32:                 {"Walking (3.2 km/h)", 2.0},
	Walking43:                 {"Walking (4.3 km/h)", 2.6},
	Walking64:                 {"Walking (6.4 km/h)", 3.8},
	ReadingSeated:             {"Reading, seated", 1.0},
	Writing:                   {"Writing", 1.0},
	Typing:                    {"Typing", 1.1},
	FilingSeated:              {"Filing, seated", 1.2},
	FilingStanding:            {"Filing, standing", 1.4},
	WalkingAboutOffice:        {"Walking about (office)", 1.7},
	LiftingPacking:            {"Lifting/packing", 2.1},
	DrivingCar:                {"Driving car", 1.5},
	DrivingAircraftRoutine:    {"Driving aircraft (routine)", 1.2},
	AircraftInstrumentLanding: {"Aircraft, instrument landing", 1.8},
	AircraftCombat:            {"Aircraft, combat", 2.4},
	HeavyVehicle:              {"Heavy vehicle", 3.2},
	Cooking:                   {"Cooking", 1.8},
	Housecleaning:             {"Housecleaning", 3.0},
	SeatedHeavyLimbMovement:   {"Seated, heavy limb movement", 2.2},
	MachineWorkSawing:         {"Machine work (sawing)", 1.8},
	MachineWorkLight:          {"Machine work (light)", 2.2},
	MachineWorkHeavy:          {"Machine work (heavy)", 4.0},
	Handling50kgBags:          {"Handling 50 kg bags", 4.0},
	PickAndShovelWork:         {"Pick and shovel work", 4.4},
	DancingSocial:             {"Dancing, social", 3.4},
	CalisthenicsExercise:      {"Calisthenics/exercise", 3.5},
	TennisSingles:             {"Tennis, singles", 4.0},
	Basketball:                {"Basketball", 6.3},
	WrestlingCompetitive:      {"Wrestling, competitive", 8.0},
}

// Valid reports whether g is a catalog garment.
func (g Garment) Valid() bool { return g >= 0 && g < garmentCount }

// Name returns the display name used by every input surface.
func (g Garment) Name() string {
	if !g.Valid() {
		return fmt.Sprintf("Garment(%d)", int(g))
	}
	return garmentTable[g].name
}

// CLO returns the garment insulation. Invalid garments insulate nothing.
func (g Garment) CLO() float64 {
	if !g.Valid() {
		return 0
	}
	return garmentTable[g].value
}

func (g Garment) String() string { return g.Name() }

// Valid reports whether a is a catalog activity.
func (a Activity) Valid() bool { return a >= 0 && a < activityCount }

// Name returns the display name used by every input surface.
func (a Activity) Name() string {
	if !a.Valid() {
		return fmt.Sprintf("Activity(%d)", int(a))
	}
	return activityTable[a].name
}

// MET returns the metabolic rate of the activity, or 0 for invalid values.
func (a Activity) MET() float64 {
	if !a.Valid() {
		return 0
	}
	return activityTable[a].value
}

func (a Activity) String() string { return a.Name() }

// Catalog is the read-only lookup over both tables. Build it once with
// NewCatalog (or share DefaultCatalog) and pass it to whatever needs it.
type Catalog struct {
	garmentsByName   map[string]Garment
	activitiesByName map[string]Activity
	garments         []Garment
	activities       []Activity
}

// NewCatalog indexes the garment and activity tables by display name.
func NewCatalog() *Catalog {
	c := &Catalog{
		garmentsByName:   make(map[string]Garment, garmentCount),
		activitiesByName: make(map[string]Activity, activityCount),
		garments:         make([]Garment, 0, garmentCount),
		activities:       make([]Activity, 0, activityCount),
	}
	for g := Garment(0); g < garmentCount; g++ {
		c.garmentsByName[g.Name()] = g
		c.garments = append(c.garments, g)
	}
	for a := Activity(0); a < activityCount; a++ {
		c.activitiesByName[a.Name()] = a
		c.activities = append(c.activities, a)
	}
	return c
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the process-wide catalog. Callers must not mutate it.
func DefaultCatalog() *Catalog { return defaultCatalog }

// Garments returns every garment in catalog order.
func (c *Catalog) Garments() []Garment {
	out := make([]Garment, len(c.garments))
	copy(out, c.garments)
	return out
}

// Activities returns every activity in catalog order.
func (c *Catalog) Activities() []Activity {
	out := make([]Activity, len(c.activities))
	copy(out, c.activities)
	return out
}

// DefaultActivity is the activity preselected by the input surfaces.
func (c *Catalog) DefaultActivity() Activity { return c.activities[0] }

// ParseGarment resolves a display name. Unknown names wrap ErrInvalidSelection.
func (c *Catalog) ParseGarment(name string) (Garment, error) {
	g, ok := c.garmentsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown clothing item %q", ErrInvalidSelection, name)
	}
	return g, nil
}

// ParseActivity resolves a display name. Unknown names wrap ErrInvalidSelection.
func (c *Catalog) ParseActivity(name string) (Activity, error) {
	a, ok := c.activitiesByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity %q", ErrInvalidSelection, name)
	}
	return a, nil
}

// ParseGarments resolves a list of display names into a set. Repeated names
// collapse into one selection.
func (c *Catalog) ParseGarments(names []string) (GarmentSet, error) {
	var set GarmentSet
	for _, name := range names {
		g, err := c.ParseGarment(name)
		if err != nil {
			return GarmentSet{}, err
		}
		set = set.With(g)
	}
	return set, nil
}
