// Package cmv compiles XML-schema-style content model expressions into
// a deterministic automaton and validates token sequences against it.
//
// A content model is built from symbols and five operators: ','
// (concatenation), '|' (alternation), '&' (interleave, every child
// exactly once in any order), the unary '?'/'*'/'+' quantifiers, and a
// counted range '[m,n]'. Two entry points drive the same underlying
// builder: Compiler.Parse drives it from the surface grammar text, while
// the direct ops (Symbol, And, Or, ...) drive it from code.
//
// Compile selects one of three automaton families depending on what the
// model needs: a plain DFA for models with no counted ranges, a DFA with
// per-range runtime counters for models that do, and a single-state
// automaton for an interleave root. Callers never see this distinction;
// CompiledModel and Cursor present one uniform interface regardless of
// which variant was built.
//
// Example:
//
//	c := cmv.NewCompiler("addr")
//	if err := c.Parse("street,city,state,zip?"); err != nil {
//	    log.Fatal(err)
//	}
//	model, err := c.Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cur := model.InitialState()
//	for _, tok := range []string{"street", "city", "state"} {
//	    if !cur.Step(tok) {
//	        log.Fatalf("unexpected token %q", tok)
//	    }
//	}
//	fmt.Println(cur.Accepting()) // true: zip is optional
package cmv
