package rounding

// Context holds the active rounding mode of one computation. The zero value
// rounds to nearest.
type Context struct {
	mode Mode
}

// NewContext returns a context in Nearest mode.
func NewContext() *Context {
	return &Context{mode: Nearest}
}

// Mode reports the active mode.
func (c *Context) Mode() Mode {
	return c.mode
}

// Acquire switches to mode and returns a function restoring the previous
// mode. Callers defer the returned function.
func (c *Context) Acquire(mode Mode) (restore func()) {
	prev := c.mode
	c.mode = mode
	return func() { c.mode = prev }
}

// Do runs fn with mode active. The previous mode is restored on every exit
// path, including a panic in fn.
func (c *Context) Do(mode Mode, fn func()) {
	restore := c.Acquire(mode)
	defer restore()
	fn()
}

func (c *Context) Add(a, b float64) float64 { return c.mode.Add(a, b) }
func (c *Context) Sub(a, b float64) float64 { return c.mode.Sub(a, b) }
func (c *Context) Mul(a, b float64) float64 { return c.mode.Mul(a, b) }
func (c *Context) Div(a, b float64) float64 { return c.mode.Div(a, b) }
func (c *Context) Sqrt(x float64) float64   { return c.mode.Sqrt(x) }
