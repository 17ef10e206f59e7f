package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigsim/internal/interval"
)

type op struct {
	arity int
	eval  func(args []interval.Interval) (interval.Interval, error)
}

func unary(f func(interval.Interval) interval.Interval) op {
	return op{1, func(a []interval.Interval) (interval.Interval, error) { return f(a[0]), nil }}
}

func unaryErr(f func(interval.Interval) (interval.Interval, error)) op {
	return op{1, func(a []interval.Interval) (interval.Interval, error) { return f(a[0]) }}
}

func binary(f func(a, b interval.Interval) interval.Interval) op {
	return op{2, func(a []interval.Interval) (interval.Interval, error) { return f(a[0], a[1]), nil }}
}

func binaryErr(f func(a, b interval.Interval) (interval.Interval, error)) op {
	return op{2, func(a []interval.Interval) (interval.Interval, error) { return f(a[0], a[1]) }}
}

var ops = map[string]op{
	"add":   binary(interval.Interval.Add),
	"sub":   binary(interval.Interval.Sub),
	"mul":   binary(interval.Interval.Mul),
	"div":   binaryErr(interval.Interval.Div),
	"hull":  binary(interval.Hull),
	"pow":   binaryErr(interval.Interval.PowInterval),
	"atan2": binaryErr(interval.Atan2),
	"neg":   unary(interval.Interval.Neg),
	"abs":   unary(interval.Interval.Abs),
	"sqr":   unary(interval.Interval.Sqr),
	"sqrt":  unaryErr(interval.Interval.Sqrt),
	"exp":   unary(interval.Interval.Exp),
	"log":   unaryErr(interval.Interval.Log),
	"sin":   unary(interval.Interval.Sin),
	"cos":   unary(interval.Interval.Cos),
	"atan":  unary(interval.Interval.Atan),
	"inv":   unaryErr(interval.Interval.Inv),
	"parse": unary(func(a interval.Interval) interval.Interval { return a }),
}

func opNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// evalOp parses args and applies the named operation.
func evalOp(name string, args []string) (interval.Interval, error) {
	o, ok := ops[name]
	if !ok {
		return interval.Interval{}, fmt.Errorf("unknown operation %q", name)
	}
	if len(args) != o.arity {
		return interval.Interval{}, fmt.Errorf("%s takes %d operands, got %d", name, o.arity, len(args))
	}
	xs := make([]interval.Interval, len(args))
	for i, s := range args {
		x, err := interval.Parse(s)
		if err != nil {
			return interval.Interval{}, err
		}
		xs[i] = x
	}
	return o.eval(xs)
}

func runInterval(cmd *cobra.Command, args []string) error {
	r, err := evalOp(args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", r)
	fmt.Printf("hex:   %s\n", r.HexString())
	fmt.Printf("bits:  %s\n", r.BitString())
	fmt.Printf("width: %s\n", strconv.FormatFloat(r.Width(), 'g', -1, 64))
	return nil
}
