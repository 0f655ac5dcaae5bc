package cache

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	KeyPrefix    = "RiskAnalytics"
	keySeparator = "_"
)

// KeyBuilder composes cache keys from request parameters. Segments are appended
// in call order and only when the value is present and not the default, so
// requests differing only in defaulted optionals share a key.
type KeyBuilder struct {
	parts []string
}

func NewKey(parts ...string) *KeyBuilder {
	return &KeyBuilder{parts: append([]string(nil), parts...)}
}

func (k *KeyBuilder) Add(parts ...string) *KeyBuilder {
	for _, part := range parts {
		if part != "" {
			k.parts = append(k.parts, part)
		}
	}
	return k
}

func (k *KeyBuilder) Int(name string, value *int) *KeyBuilder {
	if value == nil {
		return k
	}
	return k.Add(name, strconv.Itoa(*value))
}

func (k *KeyBuilder) Ints(name string, values []int) *KeyBuilder {
	if len(values) == 0 {
		return k
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	encoded := make([]string, len(sorted))
	for i, v := range sorted {
		encoded[i] = strconv.Itoa(v)
	}
	return k.Add(name, strings.Join(encoded, ","))
}

func (k *KeyBuilder) Strings(name string, values []string) *KeyBuilder {
	if len(values) == 0 {
		return k
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return k.Add(name, strings.Join(sorted, ","))
}

func (k *KeyBuilder) Float(name string, value *float64) *KeyBuilder {
	if value == nil {
		return k
	}
	return k.Add(name, strconv.FormatFloat(*value, 'f', -1, 64))
}

func (k *KeyBuilder) Bool(name string, value bool) *KeyBuilder {
	if !value {
		return k
	}
	return k.Add(name)
}

func (k *KeyBuilder) Date(name string, value time.Time) *KeyBuilder {
	if value.IsZero() {
		return k
	}
	return k.Add(name, value.UTC().Format("2006-01-02"))
}

func (k *KeyBuilder) Page(skip, take int) *KeyBuilder {
	if skip > 0 {
		k.Add("Skip", strconv.Itoa(skip))
	}
	if take > 0 {
		k.Add("Take", strconv.Itoa(take))
	}
	return k
}

// Prefix is the key so far plus a trailing separator, matching every key
// extended from it and no sibling such as Portfolio_12 vs Portfolio_123.
func (k *KeyBuilder) Prefix() string {
	return k.String() + keySeparator
}

func (k *KeyBuilder) String() string {
	return strings.Join(k.parts, keySeparator)
}
