// Package command provides the optimistic-update contract used for
// interactive mutations: apply a tentative local change, attempt to
// persist it, and deterministically revert the local change when
// persistence fails. Callers see either the new state or exactly the
// prior one, never a half-applied mix.
package command

// Command pairs a tentative mutation with its inverse.
type Command struct {
	apply    func() error
	rollback func()
}

// New builds a command from an apply function and its rollback.
// rollback may be nil when there is nothing to undo.
func New(apply func() error, rollback func()) *Command {
	return &Command{apply: apply, rollback: rollback}
}

// Run executes apply; on failure it runs rollback and returns the
// original error unchanged.
func (c *Command) Run() error {
	if err := c.apply(); err != nil {
		if c.rollback != nil {
			c.rollback()
		}
		return err
	}
	return nil
}
