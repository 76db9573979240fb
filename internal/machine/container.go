package machine

// Container is a named resource pool with a fixed capacity.
// Level stays within [0, Capacity]; both operations check before they
// commit, so a failed call never leaves a partial mutation behind.
type Container struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Level    int    `json:"level"`
	Unit     string `json:"unit"`
}

// Free returns the remaining capacity.
func (c *Container) Free() int {
	return c.Capacity - c.Level
}

// CanUse reports whether amount can be drawn from the container.
func (c *Container) CanUse(amount int) error {
	if c.Level < amount {
		return &EmptyError{Container: c.Name, Required: amount, Available: c.Level}
	}
	return nil
}

// Use draws amount from the container.
func (c *Container) Use(amount int) error {
	if err := c.CanUse(amount); err != nil {
		return err
	}
	c.Level -= amount
	return nil
}

// Fill adds amount to the container. The amount must be strictly
// positive and fit in the remaining capacity.
func (c *Container) Fill(amount int) error {
	if amount <= 0 {
		return &FillAmountError{Container: c.Name, Attempted: amount}
	}
	if free := c.Free(); amount > free {
		return &OverflowError{Container: c.Name, Attempted: amount, Free: free}
	}
	c.Level += amount
	return nil
}
