package player

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseConfig reads a player description of the form
//
//	type[:name[:color[:key=value,...]]]
//
// for example "monte-carlo-uct:Ada:#ffd918:timeLimitMS=500,explorationParameter=1.2".
// Recognized keys are delayMs, timeLimitMS, explorationParameter and seed.
func ParseConfig(def string) (Config, error) {
	parts := strings.SplitN(def, ":", 4)
	cfg := Config{Type: Type(parts[0])}
	switch cfg.Type {
	case TypeHuman, TypeRandom, TypeMonteCarlo, TypeMonteCarloUCT:
	default:
		return Config{}, errors.Errorf("unknown player type %q", parts[0])
	}
	if len(parts) > 1 {
		cfg.Name = parts[1]
	}
	if len(parts) > 2 {
		cfg.Color = parts[2]
	}
	if len(parts) < 4 || parts[3] == "" {
		return cfg, nil
	}

	for key, value := range splitParams(parts[3]) {
		var err error
		switch key {
		case "delayMs":
			cfg.DelayMs, err = parseParam(key, value, strconv.Atoi)
		case "timeLimitMS":
			cfg.TimeLimitMS, err = parseParam(key, value, strconv.Atoi)
		case "explorationParameter":
			cfg.ExplorationParameter, err = parseParam(key, value, func(s string) (float64, error) {
				return strconv.ParseFloat(s, 64)
			})
		case "seed":
			var seed *uint64
			seed, err = parseParam(key, value, func(s string) (uint64, error) {
				return strconv.ParseUint(s, 10, 64)
			})
			if seed != nil {
				cfg.Seed = *seed
			}
		default:
			err = errors.Errorf("unknown parameter %q", key)
		}
		if err != nil {
			return Config{}, errors.WithMessagef(err, "player %q", def)
		}
	}
	return cfg, nil
}

// splitParams splits "a=1,b=2" into a map of keys to values.
func splitParams(params string) map[string]string {
	values := make(map[string]string)
	for _, part := range strings.Split(params, ",") {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 1 {
			values[kv[0]] = ""
		} else {
			values[kv[0]] = kv[1]
		}
	}
	return values
}

func parseParam[T any](key, value string, parse func(string) (T, error)) (*T, error) {
	v, err := parse(value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse configuration %s=%q", key, value)
	}
	return &v, nil
}
