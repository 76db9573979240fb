package machine_test

import (
	"errors"
	"testing"

	"brewd/internal/machine"
)

func TestBrewEspressoDepletesExactly(t *testing.T) {
	m := machine.NewDefault(200, 100)
	used, err := m.Brew("espresso")
	if err != nil {
		t.Fatalf("brew err: %v", err)
	}
	if used.WaterML != 24 || used.CoffeeG != 8 {
		t.Fatalf("expected usage 24/8, got %d/%d", used.WaterML, used.CoffeeG)
	}
	if m.Water.Level != 176 {
		t.Fatalf("expected water level 176, got %d", m.Water.Level)
	}
	if m.Coffee.Level != 92 {
		t.Fatalf("expected coffee level 92, got %d", m.Coffee.Level)
	}
	if m.LastMessage != "Espresso is ready!" {
		t.Fatalf("unexpected message %q", m.LastMessage)
	}
}

func TestBrewRistretto(t *testing.T) {
	m := machine.NewDefault(200, 100)
	used, err := m.Brew("ristretto")
	if err != nil {
		t.Fatalf("brew err: %v", err)
	}
	if used.WaterML != 16 || used.CoffeeG != 8 {
		t.Fatalf("expected usage 16/8, got %d/%d", used.WaterML, used.CoffeeG)
	}
	if m.Water.Level != 184 || m.Coffee.Level != 92 {
		t.Fatalf("expected levels 184/92, got %d/%d", m.Water.Level, m.Coffee.Level)
	}
}

func TestBrewDoubleEspressoMessage(t *testing.T) {
	m := machine.NewDefault(200, 100)
	if _, err := m.Brew("double_espresso"); err != nil {
		t.Fatalf("brew err: %v", err)
	}
	if m.LastMessage != "Double Espresso is ready!" {
		t.Fatalf("unexpected message %q", m.LastMessage)
	}
}

func TestBrewUnknownRecipe(t *testing.T) {
	m := machine.NewDefault(200, 100)
	_, err := m.Brew("flat_white")
	var unknown *machine.UnknownRecipeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRecipeError, got %v", err)
	}
	if unknown.Name != "flat_white" {
		t.Fatalf("expected name flat_white, got %q", unknown.Name)
	}
	if m.Water.Level != 200 || m.Coffee.Level != 100 {
		t.Fatalf("levels changed on unknown recipe: %d/%d", m.Water.Level, m.Coffee.Level)
	}
}

func TestBrewInsufficientWater(t *testing.T) {
	m := machine.NewDefault(200, 100)
	m.Water.Level = 10

	_, err := m.Brew("espresso")
	var empty *machine.EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyError, got %v", err)
	}
	if empty.Container != "water" || empty.Required != 24 || empty.Available != 10 {
		t.Fatalf("unexpected error fields: %+v", empty)
	}
	if m.Water.Level != 10 {
		t.Fatalf("water level changed: %d", m.Water.Level)
	}
	if m.Coffee.Level != 100 {
		t.Fatalf("coffee touched on water failure: %d", m.Coffee.Level)
	}
}

func TestBrewCoffeeShortfallLeavesWaterUntouched(t *testing.T) {
	m := machine.NewDefault(200, 100)
	m.Coffee.Level = 4

	_, err := m.Brew("espresso")
	var empty *machine.EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyError, got %v", err)
	}
	if empty.Container != "coffee" {
		t.Fatalf("expected coffee error, got %q", empty.Container)
	}
	if m.Water.Level != 200 {
		t.Fatalf("water debited despite coffee shortfall: %d", m.Water.Level)
	}
	if m.Coffee.Level != 4 {
		t.Fatalf("coffee level changed: %d", m.Coffee.Level)
	}
}

func TestFillWaterOverflow(t *testing.T) {
	m := machine.NewDefault(200, 100)
	m.Water.Level = 190

	err := m.FillWater(20)
	var overflow *machine.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
	if overflow.Attempted != 20 || overflow.Free != 10 {
		t.Fatalf("unexpected error fields: %+v", overflow)
	}
	if m.Water.Level != 190 {
		t.Fatalf("water level changed: %d", m.Water.Level)
	}
}

func TestFillMessages(t *testing.T) {
	m := machine.NewDefault(200, 100)
	m.Water.Level = 100
	m.Coffee.Level = 50

	if err := m.FillWater(30); err != nil {
		t.Fatalf("fill water err: %v", err)
	}
	if m.LastMessage != "Added 30 ml of water." {
		t.Fatalf("unexpected message %q", m.LastMessage)
	}
	if err := m.FillCoffee(25); err != nil {
		t.Fatalf("fill coffee err: %v", err)
	}
	if m.LastMessage != "Added 25 g of coffee." {
		t.Fatalf("unexpected message %q", m.LastMessage)
	}
	if m.Water.Level != 130 || m.Coffee.Level != 75 {
		t.Fatalf("unexpected levels %d/%d", m.Water.Level, m.Coffee.Level)
	}
}

func TestContainerUseMoreThanAvailable(t *testing.T) {
	c := machine.Container{Name: "water", Capacity: 100, Level: 40, Unit: "ml"}
	err := c.Use(50)
	var empty *machine.EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyError, got %v", err)
	}
	if empty.Available != 40 {
		t.Fatalf("available should report pre-call level 40, got %d", empty.Available)
	}
	if c.Level != 40 {
		t.Fatalf("level changed on failed use: %d", c.Level)
	}
}

func TestContainerFillNonPositive(t *testing.T) {
	for _, amount := range []int{0, -5} {
		c := machine.Container{Name: "coffee", Capacity: 100, Level: 40, Unit: "g"}
		err := c.Fill(amount)
		var fill *machine.FillAmountError
		if !errors.As(err, &fill) {
			t.Fatalf("amount %d: expected FillAmountError, got %v", amount, err)
		}
		if c.Level != 40 {
			t.Fatalf("amount %d: level changed on failed fill: %d", amount, c.Level)
		}
	}
}

func TestIsDomain(t *testing.T) {
	m := machine.NewDefault(10, 10)
	if _, err := m.Brew("espresso"); !machine.IsDomain(err) {
		t.Fatalf("empty error should be a domain error: %v", err)
	}
	if _, err := m.Brew("mocha"); !machine.IsDomain(err) {
		t.Fatalf("unknown recipe should be a domain error: %v", err)
	}
	if machine.IsDomain(errors.New("disk on fire")) {
		t.Fatal("arbitrary errors must not count as domain errors")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := machine.NewDefault(200, 100)
	if _, err := m.Brew("americano"); err != nil {
		t.Fatalf("brew err: %v", err)
	}
	restored := machine.FromSnapshot(m.Snapshot())
	if restored.Water.Level != 52 || restored.Coffee.Level != 84 {
		t.Fatalf("expected restored levels 52/84, got %d/%d", restored.Water.Level, restored.Coffee.Level)
	}
	if restored.LastMessage != m.LastMessage {
		t.Fatalf("message not carried over: %q", restored.LastMessage)
	}
}

func TestRecipesCopy(t *testing.T) {
	r := machine.Recipes()
	if len(r) != 4 {
		t.Fatalf("expected 4 recipes, got %d", len(r))
	}
	r["espresso"] = machine.Recipe{WaterML: 1, CoffeeG: 1}
	if got := machine.Recipes()["espresso"]; got.WaterML != 24 {
		t.Fatalf("recipe table must be immutable, got %+v", got)
	}
}
