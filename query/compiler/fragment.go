package compiler

import "strings"

// Fragment is a rendered piece of SQL together with the values bound to its
// placeholders, in the order the placeholders appear.
type Fragment struct {
	SQL  string
	Args []any
}

// IsEmpty reports whether the fragment rendered to nothing
func (f Fragment) IsEmpty() bool {
	return f.SQL == ""
}

// join concatenates the non-empty fragments with sep. Arguments of dropped
// fragments are dropped with them.
func join(sep string, fragments []Fragment) Fragment {
	var (
		parts []string
		args  []any
	)
	for _, f := range fragments {
		if f.IsEmpty() {
			continue
		}
		parts = append(parts, f.SQL)
		args = append(args, f.Args...)
	}
	return Fragment{SQL: strings.Join(parts, sep), Args: args}
}

// expression is Expression over fragments
func expression(fragments ...Fragment) Fragment {
	return join(" ", fragments)
}

// word is Word over a fragment
func word(keyword string, body Fragment) Fragment {
	if body.IsEmpty() {
		return Fragment{}
	}
	return Fragment{SQL: Word(keyword, body.SQL), Args: body.Args}
}

// braced is Braced over a fragment
func braced(body Fragment) Fragment {
	if body.IsEmpty() {
		return Fragment{}
	}
	return Fragment{SQL: Braced(body.SQL), Args: body.Args}
}

func text(sql string) Fragment {
	return Fragment{SQL: sql}
}
