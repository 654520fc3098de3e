package tree

// Merge returns a new map holding defaults overridden by parsed.
//
// Where both sides hold a Map under the same key the result recurses. In
// every other case the parsed value wins if present, otherwise the default is
// kept. Neither input is modified and the result shares nothing mutable with
// them. Merge never fails: keys missing from defaults, or leaves replaced by
// maps, are carried through for the schema to judge.
func Merge(defaults, parsed Map) Map {
	out := make(Map, len(defaults)+len(parsed))

	for key, def := range defaults {
		if _, overridden := parsed[key]; overridden {
			continue
		}

		out[key] = Clone(def)
	}

	for key, val := range parsed {
		defMap, defIsMap := defaults[key].(Map)
		valMap, valIsMap := val.(Map)

		if defIsMap && valIsMap {
			out[key] = Merge(defMap, valMap)

			continue
		}

		out[key] = Clone(val)
	}

	return out
}
