package domain

// MealSlot identifies one of the three daily meals
type MealSlot int

const (
	SlotBreakfast MealSlot = iota
	SlotLunch
	SlotDinner
)

// String returns the display name for the meal slot
func (s MealSlot) String() string {
	switch s {
	case SlotBreakfast:
		return "Breakfast"
	case SlotLunch:
		return "Lunch"
	case SlotDinner:
		return "Dinner"
	default:
		return "Unknown"
	}
}

// MealSlots lists the slots in display order
func MealSlots() []MealSlot {
	return []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}
}

// DayPlan holds one recipe ID per meal slot; 0 means the slot is empty
type DayPlan struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
}

// Get returns the recipe ID assigned to a slot
func (d DayPlan) Get(slot MealSlot) int {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	}
	return 0
}

// Set assigns a recipe ID to a slot
func (d *DayPlan) Set(slot MealSlot, recipeID int) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = recipeID
	case SlotLunch:
		d.Lunch = recipeID
	case SlotDinner:
		d.Dinner = recipeID
	}
}

// WeekPlan is a rolling seven-day meal plan, Monday first
type WeekPlan struct {
	Days [7]DayPlan `json:"days"`
}

// DayNames lists weekday labels in plan order
func DayNames() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// Assigned counts how many slots have a recipe
func (w *WeekPlan) Assigned() int {
	n := 0
	for _, d := range w.Days {
		for _, slot := range MealSlots() {
			if d.Get(slot) != 0 {
				n++
			}
		}
	}
	return n
}
