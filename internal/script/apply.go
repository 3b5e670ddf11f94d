package script

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/nerv/internal/logging"
	"github.com/aretw0/nerv/pkg/model"
)

// Operation names.
const (
	OpSet     = "set"
	OpRemove  = "remove"
	OpReset   = "reset"
	OpAdd     = "add"
	OpReplace = "replace"
)

var (
	// ErrUnknownOp is returned for an operation name the runner does not know.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrPathNotFound is returned when a path does not lead to a Node.
	ErrPathNotFound = model.ErrPathNotFound
)

// Runner applies operations to a Node tree.
type Runner struct {
	root     *model.Node
	logger   *slog.Logger
	beforeOp func(i int, op Op)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger configures a logger for the Runner and the Nodes it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBeforeOp registers a hook called before each operation is applied.
func WithBeforeOp(fn func(i int, op Op)) Option {
	return func(r *Runner) {
		r.beforeOp = fn
	}
}

// NewRunner creates a Runner for root.
func NewRunner(root *model.Node, opts ...Option) *Runner {
	r := &Runner{
		root:   root,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies ops in order and stops at the first failure. Operations applied
// before the failure are kept.
func (r *Runner) Run(ops []Op) error {
	for i, op := range ops {
		if r.beforeOp != nil {
			r.beforeOp(i, op)
		}
		if err := r.Apply(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op, err)
		}
	}
	return nil
}

// Apply applies a single operation.
func (r *Runner) Apply(op Op) error {
	r.logger.Debug("apply", "op", op.Op, "path", op.Path)

	switch op.Op {
	case OpSet:
		owner, key, err := r.root.Resolve(op.Path)
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("%w: set needs a key", ErrPathNotFound)
		}
		v, err := r.wrap(op.Value)
		if err != nil {
			return err
		}
		return owner.Set(key, v)

	case OpRemove:
		owner, key, err := r.root.Resolve(op.Path)
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("%w: remove needs a key", ErrPathNotFound)
		}
		return owner.Remove(key)

	case OpReset:
		target, err := r.root.Descend(op.Path)
		if err != nil {
			return err
		}
		return target.Reset()

	case OpAdd:
		target, err := r.root.Descend(op.Path)
		if err != nil {
			return err
		}
		v, err := r.wrap(op.Value)
		if err != nil {
			return err
		}
		return target.Add(v)

	case OpReplace:
		target, err := r.root.Descend(op.Path)
		if err != nil {
			return err
		}
		data, err := r.wrapMembers(op.Value)
		if err != nil {
			return err
		}
		return target.SetAll(data)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
}

// wrap turns container values into Nodes so they can be stored.
func (r *Runner) wrap(v any) (any, error) {
	switch v.(type) {
	case *model.OrderedMap, map[string]any, []any:
		return model.FromTree(v, model.WithLogger(r.logger))
	}
	return v, nil
}

// wrapMembers wraps the members of bulk data, keeping the container itself.
func (r *Runner) wrapMembers(v any) (any, error) {
	switch d := v.(type) {
	case *model.OrderedMap:
		out := model.NewOrderedMap()
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			w, err := r.wrap(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pair.Key, err)
			}
			out.Set(pair.Key, w)
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(d))
		for _, item := range d {
			w, err := r.wrap(item)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
		}
		return out, nil
	}
	return v, nil
}
