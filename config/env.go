package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LookupFunc resolves a variable by name, in the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MapLookup returns a LookupFunc backed by values.
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

// ChainLookup returns a LookupFunc that consults sources in order and
// returns the first non-empty value.
func ChainLookup(sources ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if value, ok := source(key); ok && value != "" {
				return value, true
			}
		}
		return "", false
	}
}

// ReadDotEnv parses the given .env files without touching the process
// environment. With no paths it reads ./.env.
func ReadDotEnv(paths ...string) (map[string]string, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return values, nil
}

// envReader applies the "unset or empty means default" rule on top of a lookup.
type envReader struct {
	lookup LookupFunc
}

func (r envReader) value(key string) (string, bool) {
	if r.lookup == nil {
		return "", false
	}
	value, ok := r.lookup(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (r envReader) get(key, defaultValue string) string {
	if value, ok := r.value(key); ok {
		return value
	}
	return defaultValue
}

func (r envReader) getOptional(key string) *string {
	value, ok := r.value(key)
	if !ok {
		return nil
	}
	return &value
}

func (r envReader) getInt(key string, defaultValue int) (int, error) {
	raw, ok := r.value(key)
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &EnvError{Key: key, Value: raw, Err: err}
	}
	return value, nil
}
