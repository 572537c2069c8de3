package domain

// FeatureNames lists the model inputs in vector order.
var FeatureNames = [4]string{"temperature", "humidity", "met", "clo"}

// GarmentSet is a set of catalog garments. The zero value is the empty set.
type GarmentSet struct {
	selected [garmentCount]bool
}

// NewGarmentSet builds a set from the given garments, ignoring repeats and
// invalid values.
func NewGarmentSet(garments ...Garment) GarmentSet {
	var s GarmentSet
	for _, g := range garments {
		s = s.With(g)
	}
	return s
}

// With returns a copy of the set including g.
func (s GarmentSet) With(g Garment) GarmentSet {
	if g.Valid() {
		s.selected[g] = true
	}
	return s
}

// Without returns a copy of the set excluding g.
func (s GarmentSet) Without(g Garment) GarmentSet {
	if g.Valid() {
		s.selected[g] = false
	}
	return s
}

// Contains reports whether g is in the set.
func (s GarmentSet) Contains(g Garment) bool {
	return g.Valid() && s.selected[g]
}

// Len returns the number of selected garments.
func (s GarmentSet) Len() int {
	n := 0
	for _, ok := range s.selected {
		if ok {
			n++
		}
	}
	return n
}

// Items returns the selected garments in catalog order.
func (s GarmentSet) Items() []Garment {
	items := make([]Garment, 0, s.Len())
	for i, ok := range s.selected {
		if ok {
			items = append(items, Garment(i))
		}
	}
	return items
}

// Names returns the display names of the selected garments in catalog order.
func (s GarmentSet) Names() []string {
	items := s.Items()
	names := make([]string, len(items))
	for i, g := range items {
		names[i] = g.Name()
	}
	return names
}

// TotalCLO sums the insulation of the selected garments. Summation runs in
// catalog order so equal sets always produce bit-identical totals.
func (s GarmentSet) TotalCLO() float64 {
	total := 0.0
	for i, ok := range s.selected {
		if ok {
			total += garmentTable[i].value
		}
	}
	return total
}

// FeatureVector is the model input. Field order matches FeatureNames.
type FeatureVector struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	MET         float64 `json:"met"`
	CLO         float64 `json:"clo"`
}

// NewFeatureVector combines environmental inputs with an already validated
// clothing set and activity.
func NewFeatureVector(temperature, humidity float64, clothing GarmentSet, activity Activity) FeatureVector {
	return FeatureVector{
		Temperature: temperature,
		Humidity:    humidity,
		MET:         activity.MET(),
		CLO:         clothing.TotalCLO(),
	}
}

// Values returns the vector as (temperature, humidity, met, clo).
func (v FeatureVector) Values() [4]float64 {
	return [4]float64{v.Temperature, v.Humidity, v.MET, v.CLO}
}

// Selection is the raw user input as submitted by a form or API client.
type Selection struct {
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	Clothing    []string `json:"clothing"`
	Activity    string   `json:"activity"`
}

// Aggregate resolves the selection against the catalog and builds the
// feature vector. Any name outside the catalog fails with ErrInvalidSelection.
func (c *Catalog) Aggregate(sel Selection) (FeatureVector, error) {
	activity, err := c.ParseActivity(sel.Activity)
	if err != nil {
		return FeatureVector{}, err
	}
	clothing, err := c.ParseGarments(sel.Clothing)
	if err != nil {
		return FeatureVector{}, err
	}
	return NewFeatureVector(sel.Temperature, sel.Humidity, clothing, activity), nil
}
