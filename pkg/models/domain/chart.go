package domain

// ChartPoint is a single {x, y} record of a chart series.
type ChartPoint struct {
	X string  `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}

// ChartData is a named, typed series ready for a presentation layer.
// Immutable once built. Carries bson tags because charts are persisted
// inside report snapshots.
type ChartData struct {
	ChartType   string       `bson:"chart_type" json:"chart_type"` // line, bar, pie
	Title       string       `bson:"title" json:"title"`
	Data        []ChartPoint `bson:"data" json:"data"`
	XAxis       string       `bson:"x_axis" json:"x_axis"`
	YAxis       string       `bson:"y_axis" json:"y_axis"`
	Colors      []string     `bson:"colors,omitempty" json:"colors,omitempty"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
}
