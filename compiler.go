package cmv

import (
	"github.com/go-cmv/cmv/tree"
)

// Compiler assembles a single content model. It is a thin façade over a
// tree.DirectDriver — the same relationship regex.go's Regex has to
// meta.Engine — adding only the name field and the final Check/compile
// step.
type Compiler struct {
	name   string
	driver *tree.DirectDriver
}

// NewCompiler creates an empty Compiler. name is carried through for
// diagnostics only; it has no effect on compilation.
func NewCompiler(name string) *Compiler {
	return &Compiler{name: name, driver: tree.NewDirectDriver()}
}

// Name returns the name the Compiler was created with.
func (c *Compiler) Name() string { return c.name }

// Parse feeds text, in the §6 surface grammar, through parseExpression,
// driving this Compiler's builder exactly as a caller using the direct
// ops below would. It may be mixed with direct calls: Parse is just
// another driver of the same builder.
func (c *Compiler) Parse(text string) error {
	return parseExpression(text, c.driver)
}

// Symbol appends a symbol leaf as the next operand.
func (c *Compiler) Symbol(s string) { c.driver.Symbol(s) }

// Epsilon appends the distinguished empty-symbol leaf as the next operand.
func (c *Compiler) Epsilon() { c.driver.Epsilon() }

// Opt wraps the immediately preceding operand in '?'.
func (c *Compiler) Opt() { c.driver.Opt() }

// Star wraps the immediately preceding operand in '*'.
func (c *Compiler) Star() { c.driver.Star() }

// Plus wraps the immediately preceding operand in '+'.
func (c *Compiler) Plus() { c.driver.Plus() }

// Range wraps the immediately preceding operand in a counted range
// [min,max], collapsing to ?/*/+/neutral per the §4.1 reduction table
// when applicable.
func (c *Compiler) Range(min, max int) error { return c.driver.Range(min, max) }

// Neutral wraps the immediately preceding operand in the identity
// operator, preserving a named [1,1] scope.
func (c *Compiler) Neutral() { c.driver.Neutral() }

// And groups the pending operand into a ',' (concatenation) chain.
func (c *Compiler) And() { c.driver.And() }

// Or groups the pending operand into a '|' (alternation) chain.
func (c *Compiler) Or() { c.driver.Or() }

// All groups the pending operand into a '&' (interleave) chain.
func (c *Compiler) All() { c.driver.All() }

// Push opens a new grouping scope for a parenthesized sub-expression.
func (c *Compiler) Push() { c.driver.Push() }

// Pop closes the innermost grouping scope.
func (c *Compiler) Pop() { c.driver.Pop() }

// Compile assembles the tree built so far, validates its structural
// invariants, computes position functions, and selects and builds the
// matching automaton variant. The Compiler is left unused on either
// outcome; callers who need another model create a new Compiler.
func (c *Compiler) Compile() (*CompiledModel, error) {
	root, err := c.driver.Build()
	if err != nil {
		return nil, err
	}
	return compile(root)
}
