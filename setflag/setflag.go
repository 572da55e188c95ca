// Package setflag is a flag.Value that collects values from a fixed set of
// options, given either as repeated flags or comma-separated.
package setflag

import (
	"fmt"
	"sort"
	"strings"
)

func New(options ...string) *SetFlag {
	sf := &SetFlag{
		values:  make(map[string]struct{}, len(options)),
		options: make(map[string]struct{}, len(options)),
	}
	for _, opt := range options {
		sf.options[opt] = struct{}{}
	}
	return sf
}

type SetFlag struct {
	options map[string]struct{}
	values  map[string]struct{}
}

// List returns the chosen values in sorted order.
func (sf *SetFlag) List() []string {
	return sorted(sf.values)
}

// Options returns every allowed value, quoted and comma-separated, for use
// in usage strings.
func (sf *SetFlag) Options() string {
	opts := sorted(sf.options)
	for i, opt := range opts {
		opts[i] = fmt.Sprintf("'%s'", opt)
	}
	return strings.Join(opts, ", ")
}

// Has reports whether value was chosen.
func (sf *SetFlag) Has(value string) bool {
	_, ok := sf.values[value]
	return ok
}

func (sf *SetFlag) String() string {
	return strings.Join(sf.List(), ", ")
}

func (sf *SetFlag) Set(value string) error {
	values := []string{value}
	if strings.Contains(value, ",") {
		values = strings.Split(value, ",")
		for i, str := range values {
			values[i] = strings.TrimSpace(str)
		}
	}
	for _, value := range values {
		if _, exists := sf.options[value]; !exists {
			return fmt.Errorf("unsupported value '%s'", value)
		}
		sf.values[value] = struct{}{}
	}
	return nil
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
