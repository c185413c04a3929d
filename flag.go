// File: jitflags/flag.go
package jitflags

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the writable target behind a Flag: either a direct reference to a
// group field or a setter that transforms the raw token before storing it.
type Value interface {
	// Set parses the raw token and writes the result to the target.
	Set(raw string) error
	// Get returns the current value of the target.
	Get() any
	// String renders the current value the way it would be written on a
	// command line.
	String() string
}

// Flag binds an external configuration key to the in-memory target it
// controls.
type Flag struct {
	Name  string
	Usage string
	value Value
}

// BoolFlag returns a descriptor bound directly to a boolean field.
func BoolFlag(name string, target *bool, usage string) Flag {
	return Flag{Name: name, Usage: usage, value: boolValue{target}}
}

// Int32Flag returns a descriptor bound directly to an int32 field.
func Int32Flag(name string, target *int32, usage string) Flag {
	return Flag{Name: name, Usage: usage, value: int32Value{target}}
}

// Int64Flag returns a descriptor bound directly to an int64 field.
func Int64Flag(name string, target *int64, usage string) Flag {
	return Flag{Name: name, Usage: usage, value: int64Value{target}}
}

// Float64Flag returns a descriptor bound directly to a float64 field.
func Float64Flag(name string, target *float64, usage string) Flag {
	return Flag{Name: name, Usage: usage, value: float64Value{target}}
}

// StringListFlag returns a descriptor whose setter splits the raw token on
// commas and replaces the target list with the result.
func StringListFlag(name string, target *[]string, usage string) Flag {
	return Flag{Name: name, Usage: usage, value: stringListValue{target}}
}

type boolValue struct{ target *bool }

func (v boolValue) Set(raw string) error {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q as bool", ErrBadValue, raw)
	}
	*v.target = b
	return nil
}

func (v boolValue) Get() any       { return *v.target }
func (v boolValue) String() string { return strconv.FormatBool(*v.target) }

type int32Value struct{ target *int32 }

func (v int32Value) Set(raw string) error {
	// Base 0 for auto-detection (e.g., "0xFF")
	i, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q as int32", ErrBadValue, raw)
	}
	*v.target = int32(i)
	return nil
}

func (v int32Value) Get() any       { return *v.target }
func (v int32Value) String() string { return strconv.FormatInt(int64(*v.target), 10) }

type int64Value struct{ target *int64 }

func (v int64Value) Set(raw string) error {
	i, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q as int64", ErrBadValue, raw)
	}
	*v.target = i
	return nil
}

func (v int64Value) Get() any       { return *v.target }
func (v int64Value) String() string { return strconv.FormatInt(*v.target, 10) }

type float64Value struct{ target *float64 }

func (v float64Value) Set(raw string) error {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q as float64", ErrBadValue, raw)
	}
	*v.target = f
	return nil
}

func (v float64Value) Get() any       { return *v.target }
func (v float64Value) String() string { return strconv.FormatFloat(*v.target, 'g', -1, 64) }

type stringListValue struct{ target *[]string }

func (v stringListValue) Set(raw string) error {
	*v.target = strings.Split(raw, ",")
	return nil
}

func (v stringListValue) Get() any {
	// Copy so exported snapshots cannot alias the live list.
	return append([]string{}, *v.target...)
}

func (v stringListValue) String() string { return strings.Join(*v.target, ",") }

// Parse applies command-line-style arguments to the descriptor list.
// Recognized flags overwrite their bound target in place. Both "--name=value"
// and "--name value" forms are accepted; a bare "--name" with no value sets a
// boolean-style flag to true. Non-flag arguments are skipped. All unknown
// flag names are collected and reported together via ErrUnknownFlag.
func Parse(args []string, flags []Flag) error {
	byName := make(map[string]Value, len(flags))
	for _, f := range flags {
		byName[f.Name] = f.value
	}

	var unknown []string
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			// Skip "--" used as a separator
			i++
			continue
		}

		var name, raw string
		hasValue := false
		if j := strings.Index(content, "="); j >= 0 {
			name = content[:j]
			raw = content[j+1:]
			hasValue = true
			i++
		} else {
			name = content
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				raw = args[i+1]
				hasValue = true
				i += 2
			} else {
				i++
			}
		}

		value, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		if !hasValue {
			raw = "true"
		}
		if err := value.Set(raw); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownFlag, strings.Join(unknown, ", "))
	}
	return nil
}

// Usage renders help text for the descriptor list, one flag per entry in
// declaration order, with the current value shown as the default.
func Usage(flags []Flag) string {
	var b strings.Builder
	for _, f := range flags {
		fmt.Fprintf(&b, "  --%s=%s\n", f.Name, f.value.String())
		if f.Usage != "" {
			fmt.Fprintf(&b, "      %s\n", f.Usage)
		}
	}
	return b.String()
}
