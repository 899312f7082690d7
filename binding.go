package evreactor

// Binding pairs a predicate over input-device state with a shell command.
// LastTruth is the latched result of the most recent evaluation; a rising
// edge (false -> true) is what triggers Command's execution. LastTruth
// starts false, so any binding whose predicate is already true at the first
// evaluation fires exactly once.
type Binding struct {
	Expr      *Expr
	Command   string
	LastTruth bool
}

// eval evaluates b's predicate at now and, on a rising edge, hands Command
// to run. Falling edges and steady state do nothing. run may be nil, in
// which case rising edges are latched but nothing executes (the case for a
// Context built with WithCommandRunner(nil)).
func (b *Binding) eval(c *Context, now int64, run CommandRunner) {
	truth := c.evalExpr(b.Expr, now)
	if truth == b.LastTruth {
		return
	}
	b.LastTruth = truth
	if truth && run != nil {
		if err := run.Run(b.Command); err != nil {
			logAt(c.log.get(), LevelWarn, "command failed", Field{"command", b.Command}, Field{"error", err})
		}
	}
}
