// Package machine holds the coffee machine domain model: two capacity
// guarded containers, the recipe table and the brew/fill transitions.
// Every operation either succeeds and mutates, or fails and leaves the
// machine exactly as it was.
package machine

import "fmt"

// Machine owns the water and coffee containers exclusively.
// LastMessage records the human-readable outcome of the most recent
// operation; it carries no control-flow meaning.
type Machine struct {
	Water       Container
	Coffee      Container
	LastMessage string
}

// Snapshot is the serialized form of a machine. Its JSON shape (keys
// water, coffee, last_message) is the persisted format and is read by
// external tools, so it must stay stable.
type Snapshot struct {
	Water       Container `json:"water"`
	Coffee      Container `json:"coffee"`
	LastMessage string    `json:"last_message,omitempty"`
}

// NewDefault builds a machine with both containers filled to capacity.
func NewDefault(waterCapacity, coffeeCapacity int) *Machine {
	return &Machine{
		Water:  Container{Name: "water", Capacity: waterCapacity, Level: waterCapacity, Unit: "ml"},
		Coffee: Container{Name: "coffee", Capacity: coffeeCapacity, Level: coffeeCapacity, Unit: "g"},
	}
}

// FromSnapshot restores a machine from a persisted snapshot.
func FromSnapshot(s Snapshot) *Machine {
	return &Machine{Water: s.Water, Coffee: s.Coffee, LastMessage: s.LastMessage}
}

// Snapshot returns a value copy of the machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Water: m.Water, Coffee: m.Coffee, LastMessage: m.LastMessage}
}

// Brew makes the named drink, debiting both containers by the recipe
// amounts. Both containers are validated before either is touched, so a
// coffee shortfall never leaves water partially debited. Water is
// checked first; when both are short, the water error wins.
func (m *Machine) Brew(name string) (Recipe, error) {
	r, ok := recipes[name]
	if !ok {
		return Recipe{}, &UnknownRecipeError{Name: name}
	}
	if err := m.Water.CanUse(r.WaterML); err != nil {
		return Recipe{}, err
	}
	if err := m.Coffee.CanUse(r.CoffeeG); err != nil {
		return Recipe{}, err
	}
	m.Water.Level -= r.WaterML
	m.Coffee.Level -= r.CoffeeG
	m.LastMessage = displayName(name) + " is ready!"
	return r, nil
}

// FillWater adds amount millilitres to the water container.
func (m *Machine) FillWater(amount int) error {
	if err := m.Water.Fill(amount); err != nil {
		return err
	}
	m.LastMessage = fmt.Sprintf("Added %d %s of %s.", amount, m.Water.Unit, m.Water.Name)
	return nil
}

// FillCoffee adds amount grams to the coffee container.
func (m *Machine) FillCoffee(amount int) error {
	if err := m.Coffee.Fill(amount); err != nil {
		return err
	}
	m.LastMessage = fmt.Sprintf("Added %d %s of %s.", amount, m.Coffee.Unit, m.Coffee.Name)
	return nil
}
