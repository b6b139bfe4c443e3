package catalog

// Shape is the template geometry of a spell's area of effect.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
	ShapeLine   Shape = "line"
)

// IsValid returns true if the shape is one of the known geometries.
func (s Shape) IsValid() bool {
	switch s {
	case ShapeCircle, ShapeSquare, ShapeLine:
		return true
	default:
		return false
	}
}

// Trigger describes when an over-time spell applies its effect.
type Trigger string

const (
	TriggerStart        Trigger = "start"
	TriggerEnter        Trigger = "enter"
	TriggerStartOrEnter Trigger = "start_or_enter"
)

// IsValid returns true if the trigger is a known value.
func (t Trigger) IsValid() bool {
	switch t {
	case TriggerStart, TriggerEnter, TriggerStartOrEnter:
		return true
	default:
		return false
	}
}

// Save describes the saving throw a spell allows.
type Save struct {
	Type string
	// DC is nil when the spell leaves the difficulty to the table.
	DC *float64
}

// Spell is a validated spell record. Geometry fields are populated
// according to Shape: RadiusFt for circles, SideFt for squares,
// LengthFt and WidthFt for lines.
type Spell struct {
	ID            string
	Name          string
	FormatVersion int

	Shape    Shape
	RadiusFt float64
	SideFt   float64
	LengthFt float64
	WidthFt  float64

	DamageTypes []string
	Save        *Save
	// Dice is a roll expression like "8d6"; empty when the spell rolls nothing.
	Dice  string
	Color string

	// DurationTurns is 0 for indefinite effects.
	DurationTurns int
	OverTime      bool
	MovePerTurnFt float64
	TriggerOn     Trigger
	Persistent    bool
	PinnedDefault bool
}

func (s *Spell) EntityID() string   { return s.ID }
func (s *Spell) EntityKind() Kind   { return KindSpell }
func (s *Spell) EntityName() string { return s.Name }
