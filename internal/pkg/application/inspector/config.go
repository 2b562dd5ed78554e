package inspector

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

const (
	StoreMap    string = "map"
	StoreRecord string = "record"
)

type FieldConfig struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Values   []string `yaml:"values"`
}

type SchemaConfig struct {
	Name   string        `yaml:"name"`
	Store  string        `yaml:"store"`
	Fields []FieldConfig `yaml:"fields"`
	Omit   []string      `yaml:"omit"`
}

func (s *SchemaConfig) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

type Config struct {
	Schemas []SchemaConfig `yaml:"schemas"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	for idx := range cfg.Schemas {
		if err := validate(&cfg.Schemas[idx]); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func validate(schema *SchemaConfig) error {
	if schema.Name == "" {
		return fmt.Errorf("schema without a name is not supported")
	}

	if schema.Store == "" {
		schema.Store = StoreMap
	}

	if schema.Store != StoreMap && schema.Store != StoreRecord {
		return fmt.Errorf("schema %s: store %q is not supported", schema.Name, schema.Store)
	}

	for _, field := range schema.Fields {
		if field.Name == "" {
			return fmt.Errorf("schema %s: field without a name is not supported", schema.Name)
		}

		if _, ok := readers[field.Type]; !ok && field.Type != TypeEnum {
			return fmt.Errorf("schema %s: field %s has unsupported type %q", schema.Name, field.Name, field.Type)
		}

		if field.Type == TypeEnum && len(field.Values) == 0 {
			return fmt.Errorf("schema %s: enum field %s must list its values", schema.Name, field.Name)
		}
	}

	return nil
}
