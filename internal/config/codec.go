// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

// propertiesCodec reads Java-style property files. Dotted keys become
// nested maps so "input.dir" lands under the "input" table.
type propertiesCodec struct{}

func (propertiesCodec) Decode(b []byte, v map[string]any) error {
	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return err
	}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		insert(v, strings.Split(key, "."), value)
	}
	return nil
}

func (propertiesCodec) Encode(map[string]any) ([]byte, error) {
	return nil, errors.New("writing property files is not supported")
}

func insert(m map[string]any, path []string, value string) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

func codecRegistry() *viper.DefaultCodecRegistry {
	r := viper.NewCodecRegistry()
	if err := r.RegisterCodec("properties", propertiesCodec{}); err != nil {
		panic(err)
	}
	return r
}
