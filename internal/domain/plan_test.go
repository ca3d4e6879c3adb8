package domain

import "testing"

func TestMealSlotString(t *testing.T) {
	t.Parallel()

	want := []string{"Breakfast", "Lunch", "Dinner"}
	for i, slot := range MealSlots() {
		if slot.String() != want[i] {
			t.Errorf("slot %d = %q, want %q", i, slot.String(), want[i])
		}
	}
	if MealSlot(9).String() != "Unknown" {
		t.Error("out-of-range slot should read Unknown")
	}
}

func TestDayPlanGetSet(t *testing.T) {
	t.Parallel()

	var d DayPlan
	for _, slot := range MealSlots() {
		if d.Get(slot) != 0 {
			t.Errorf("empty plan slot %v = %d", slot, d.Get(slot))
		}
	}

	d.Set(SlotLunch, 42)
	if d.Get(SlotLunch) != 42 {
		t.Errorf("lunch = %d after Set", d.Get(SlotLunch))
	}
	if d.Get(SlotBreakfast) != 0 || d.Get(SlotDinner) != 0 {
		t.Error("Set touched a neighboring slot")
	}

	d.Set(SlotLunch, 0)
	if d.Get(SlotLunch) != 0 {
		t.Error("Set(0) should clear the slot")
	}
}

func TestWeekPlanAssigned(t *testing.T) {
	t.Parallel()

	var w WeekPlan
	if w.Assigned() != 0 {
		t.Errorf("empty week assigned = %d", w.Assigned())
	}

	w.Days[0].Set(SlotBreakfast, 7)
	w.Days[0].Set(SlotDinner, 8)
	w.Days[6].Set(SlotLunch, 7)
	if got := w.Assigned(); got != 3 {
		t.Errorf("assigned = %d, want 3", got)
	}
}

func TestDayNames(t *testing.T) {
	t.Parallel()

	names := DayNames()
	if len(names) != 7 {
		t.Fatalf("day count = %d", len(names))
	}
	if names[0] != "Monday" || names[6] != "Sunday" {
		t.Errorf("week runs %s through %s, want Monday through Sunday", names[0], names[6])
	}
}
