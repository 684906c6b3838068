package domain

// KPIMetric is a headline scalar with a target and a directional judgment,
// intended for dashboard display. It has no identity beyond its name within
// a single response.
type KPIMetric struct {
	Name        string  `bson:"name" json:"name"`
	Value       float64 `bson:"value" json:"value"`
	Unit        string  `bson:"unit" json:"unit"`
	Change      float64 `bson:"change" json:"change"`
	ChangeType  string  `bson:"change_type" json:"change_type"` // positive, negative, neutral
	Description string  `bson:"description" json:"description"`
	Target      float64 `bson:"target" json:"target"`
	IsGood      bool    `bson:"is_good" json:"is_good"`
}
