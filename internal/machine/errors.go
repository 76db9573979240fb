package machine

import (
	"errors"
	"fmt"
)

// EmptyError is returned when a container holds less than the requested
// amount. Available is the level at the time of the call.
type EmptyError struct {
	Container string
	Required  int
	Available int
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("the %s container only has %d available but %d is required",
		e.Container, e.Available, e.Required)
}

// OverflowError is returned when a fill would exceed the container
// capacity. Free is the remaining capacity at the time of the call.
type OverflowError struct {
	Container string
	Attempted int
	Free      int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("adding %d to the %s container would overflow it; it has room for only %d more",
		e.Attempted, e.Container, e.Free)
}

// FillAmountError is returned when a fill amount is not strictly positive.
type FillAmountError struct {
	Container string
	Attempted int
}

func (e *FillAmountError) Error() string {
	return fmt.Sprintf("the amount (%d) to add to the %s container must be a positive number",
		e.Attempted, e.Container)
}

// UnknownRecipeError is returned for a brew request naming a recipe that
// is not in the table.
type UnknownRecipeError struct {
	Name string
}

func (e *UnknownRecipeError) Error() string {
	return fmt.Sprintf("unknown recipe %q", e.Name)
}

// IsDomain reports whether err is one of the machine validation errors,
// as opposed to an infrastructure failure. The transport layer uses this
// to pick a client error over a server error.
func IsDomain(err error) bool {
	var (
		empty    *EmptyError
		overflow *OverflowError
		fill     *FillAmountError
		unknown  *UnknownRecipeError
	)
	return errors.As(err, &empty) ||
		errors.As(err, &overflow) ||
		errors.As(err, &fill) ||
		errors.As(err, &unknown)
}
