package props

import (
	"fmt"
	"reflect"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/lazy"
)

// Meta describes a prop for help output and command-line flags.
type Meta struct {
	Help     string
	Category string
	Hidden   bool
	Required bool
	Abbrev   string
}

// Entry is a prop whatever its element type.
type Entry interface {
	lazy.Node

	Meta() Meta

	// Explicit reports whether the prop was set after creation.
	Explicit() bool

	decode(node *yaml.Node) (apply func(), err error)
	flagValue() *flagValue
	fromFlag() bool
}

// Prop is a leaf value with a default and descriptive metadata.
type Prop[T any] struct {
	*lazy.Value[T]

	def  T
	meta Meta

	explicit bool
	flagged  bool
}

func (p *Prop[T]) Help(help string) *Prop[T] {
	p.meta.Help = help
	return p
}

func (p *Prop[T]) Category(category string) *Prop[T] {
	p.meta.Category = category
	return p
}

func (p *Prop[T]) Hidden(hidden bool) *Prop[T] {
	p.meta.Hidden = hidden
	return p
}

func (p *Prop[T]) Required(required bool) *Prop[T] {
	p.meta.Required = required
	return p
}

// Abbrev sets the one-letter shorthand of the prop's flag.
func (p *Prop[T]) Abbrev(abbrev string) *Prop[T] {
	p.meta.Abbrev = abbrev
	return p
}

func (p *Prop[T]) Meta() Meta     { return p.meta }
func (p *Prop[T]) Default() T     { return p.def }
func (p *Prop[T]) Explicit() bool { return p.explicit }
func (p *Prop[T]) fromFlag() bool { return p.flagged }

// Set stores v and marks the prop as explicitly set.
func (p *Prop[T]) Set(v T) {
	p.explicit = true
	p.Value.Set(v)
}

// Reset restores the default value.
func (p *Prop[T]) Reset() {
	p.Value.Set(p.def)
	p.explicit = false
	p.flagged = false
}

func (p *Prop[T]) decode(node *yaml.Node) (func(), error) {
	var v T
	if err := node.Decode(&v); err != nil {
		return nil, p.invalid(err)
	}

	return func() { p.Set(v) }, nil
}

func (p *Prop[T]) parse(s string) error {
	var v T
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return p.invalid(err)
	}

	p.flagged = true
	p.Set(v)
	return nil
}

func (p *Prop[T]) format() string {
	if p.Dirty() || p.Failed() {
		return ""
	}
	return fmt.Sprint(p.Peek())
}

func (p *Prop[T]) invalid(err error) error {
	err = zerr.With(zerr.Wrap(ErrInvalidValue, err.Error()), "prop", p.Name())
	return zerr.With(err, "type", reflect.TypeFor[T]().String())
}

func (p *Prop[T]) flagValue() *flagValue {
	return &flagValue{
		typ:    reflect.TypeFor[T]().String(),
		parse:  p.parse,
		format: p.format,
	}
}
