package persist

import (
	"context"
)

// CopyOptions controls overwrite and cleanup behavior of Copy.
type CopyOptions struct {
	// Force overwrites a target that already holds tasks.
	Force bool
	// DropAfter removes the source once the target has been saved.
	DropAfter bool
}

// CopyResult summarizes a successful copy.
type CopyResult struct {
	Copied        int
	SourceRemoved bool
}

// Copy transfers the full task list of src into dst. Both sides may be any
// backend kind.
//
// A target that exists and already holds tasks is left untouched unless
// opts.Force is set. The target is checked before the source is read. The source is removed only after the target was saved.
func Copy(ctx context.Context, src, dst Persister, opts CopyOptions) (CopyResult, error) {
	var result CopyResult

	if SameTarget(src, dst) {
		return result, ErrSamePersister
	}

	ok, err := src.Exists(ctx)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, opError("read", src, ErrNotFound)
	}

	if !opts.Force {
		ok, err := dst.Exists(ctx)
		if err != nil {
			return result, err
		}
		if ok {
			existing, err := dst.Read(ctx)
			if err != nil {
				return result, err
			}
			if !existing.IsEmpty() {
				return result, &ConflictError{Target: dst.String(), Tasks: existing.Len()}
			}
		}
	}

	data, err := src.Read(ctx)
	if err != nil {
		return result, err
	}
	if data.IsEmpty() {
		return result, ErrEmptySource
	}

	if err := dst.Save(ctx, data); err != nil {
		return result, err
	}
	result.Copied = data.Len()

	if opts.DropAfter {
		if err := src.Remove(ctx); err != nil {
			return result, err
		}
		result.SourceRemoved = true
	}

	return result, nil
}
