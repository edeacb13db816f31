package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// AllLabel is how the All variant is spelled in pickers, flags and URLs.
const AllLabel = "All"

// Selection is either All or a Subset of names. The zero value is the empty
// subset, which matches nothing.
type Selection struct {
	all   bool
	names map[string]struct{}
}

func All() Selection { return Selection{all: true} }

// Subset selects exactly the given names.
func Subset(names ...string) Selection {
	s := Selection{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// ParseSelection maps boundary input to a Selection: no values, or any value
// equal to AllLabel, means All.
func ParseSelection(values []string) Selection {
	if len(values) == 0 {
		return All()
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, AllLabel) {
			return All()
		}
		if v != "" {
			names = append(names, v)
		}
	}
	return Subset(names...)
}

func (s Selection) IsAll() bool { return s.all }

// IsEmpty reports whether the selection matches nothing.
func (s Selection) IsEmpty() bool { return !s.all && len(s.names) == 0 }

func (s Selection) Contains(name string) bool {
	if s.all {
		return true
	}
	_, ok := s.names[name]
	return ok
}

// Names returns the sorted subset names, nil for All.
func (s Selection) Names() []string {
	if s.all {
		return nil
	}
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Toggle flips one name. Toggling a name while All is on narrows to just
// that name.
func (s Selection) Toggle(name string) Selection {
	if s.all {
		return Subset(name)
	}
	next := Subset(s.Names()...)
	if _, ok := next.names[name]; ok {
		delete(next.names, name)
	} else {
		next.names[name] = struct{}{}
	}
	return next
}

func (s Selection) Equal(o Selection) bool {
	if s.all || o.all {
		return s.all == o.all
	}
	if len(s.names) != len(o.names) {
		return false
	}
	for n := range s.names {
		if _, ok := o.names[n]; !ok {
			return false
		}
	}
	return true
}

// String is a short label for footers and logs.
func (s Selection) String() string {
	if s.all {
		return AllLabel
	}
	names := s.Names()
	switch len(names) {
	case 0:
		return "None"
	case 1, 2:
		return strings.Join(names, ", ")
	default:
		return names[0] + ", " + names[1] + " +" + strconv.Itoa(len(names)-2)
	}
}
