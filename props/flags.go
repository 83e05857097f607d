package props

import (
	"strings"

	"github.com/spf13/pflag"
)

// flagValue adapts a prop to pflag. Values are parsed with YAML scalar and flow syntax,
// so "2.5", "true" and "[1, 2, 3]" all work.
type flagValue struct {
	typ    string
	parse  func(string) error
	format func() string
}

func (f *flagValue) String() string {
	// pflag builds zero values to detect defaults
	if f == nil || f.format == nil {
		return ""
	}
	return f.format()
}

func (f *flagValue) Set(s string) error {
	return f.parse(s)
}

func (f *flagValue) Type() string {
	return f.typ
}

// FlagName is the flag a prop is exposed as: its name with underscores turned into dashes.
func FlagName(prop string) string {
	return strings.ReplaceAll(prop, "_", "-")
}

// AddFlags registers one flag per visible prop, in declaration order.
// Values set from flags take precedence over values loaded afterwards.
func (m *Manager) AddFlags(fs *pflag.FlagSet) {
	for _, name := range m.order {
		entry := m.props[name]
		meta := entry.Meta()
		if meta.Hidden {
			continue
		}

		fs.VarP(entry.flagValue(), FlagName(name), meta.Abbrev, meta.Help)
	}
}
