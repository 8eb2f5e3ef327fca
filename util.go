package rowstore

import "strings"

// Map returns fn applied to every element of list.
func Map[In any, Out any](list []In, fn func(In) Out) []Out {
	out := make([]Out, 0, len(list))
	for _, v := range list {
		out = append(out, fn(v))
	}

	return out
}

// Filter returns the elements of list for which keep reports true, in order.
func Filter[T any](list []T, keep func(T) bool) []T {
	var out []T
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}

// compactFragments trims every fragment and drops the blank ones.
func compactFragments(fragments []string) []string {
	return Filter(Map(fragments, strings.TrimSpace), func(f string) bool { return f != "" })
}
