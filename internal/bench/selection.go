package bench

import (
	"errors"
	"fmt"
)

// Selection enables or disables each catalog entry by index. Its length must
// match the catalog the Runner executes.
type Selection []bool

// SelectAll returns a selection of n enabled entries.
func SelectAll(n int) Selection {
	sel := make(Selection, n)
	for i := range sel {
		sel[i] = true
	}
	return sel
}

// SelectIDs returns a selection enabling only the given workload ids.
// Every unknown id is reported, wrapped around ErrUnknownWorkload.
func SelectIDs(catalog []Descriptor, ids ...string) (Selection, error) {
	sel := make(Selection, len(catalog))
	if err := sel.set(catalog, true, ids); err != nil {
		return nil, err
	}
	return sel, nil
}

// Without returns a copy of s with the given workload ids disabled.
func (s Selection) Without(catalog []Descriptor, ids ...string) (Selection, error) {
	out := make(Selection, len(s))
	copy(out, s)
	if err := out.set(catalog, false, ids); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of enabled entries.
func (s Selection) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

func (s Selection) set(catalog []Descriptor, value bool, ids []string) error {
	var errs []error
	for _, id := range ids {
		i := IndexOf(catalog, id)
		if i < 0 || i >= len(s) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownWorkload, id))
			continue
		}
		s[i] = value
	}
	return errors.Join(errs...)
}
