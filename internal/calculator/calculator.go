package calculator

// Calculator pairs a State with its display. It is not safe for concurrent
// use; Sessions serializes access for the HTTP surface.
type Calculator struct {
	state   State
	display string
}

// New returns a calculator showing "0".
func New() *Calculator {
	return &Calculator{
		state:   ResetState(),
		display: InitialDisplay,
	}
}

// OnButton applies one button press and returns the new display.
func (c *Calculator) OnButton(label string) string {
	c.state, c.display = HandleToken(c.state, c.display, label)
	return c.display
}

// Press is OnButton for a token that has already been classified.
func (c *Calculator) Press(tok Token) string {
	c.state, c.display = Step(c.state, c.display, tok)
	return c.display
}

// CurrentDisplay returns what the display surface should render.
func (c *Calculator) CurrentDisplay() string {
	return c.display
}

// State returns a copy of the carried state.
func (c *Calculator) State() State {
	return c.state
}
