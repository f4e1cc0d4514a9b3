// Package validation validates flat string maps against pipe-separated rules.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "APP_ENV":  "local",
//	    "APP_PORT": "8000",
//	}, validation.Rules{
//	    "APP_ENV":  "required|in:local,production,testing",
//	    "APP_PORT": "required|integer|between:1,65535",
//	})
//
//	if v.Fails() {
//	    // v.Errors() returns *Errors with Bag map[string][]string
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// # Available Rules
//
//   - required        : field must be present and non-empty
//   - nullable        : an empty value skips the remaining rules
//   - numeric         : parseable as float64
//   - integer         : parseable as int
//   - boolean         : parseable by strconv.ParseBool
//   - min:n, max:n    : lower/upper bound
//   - between:lo,hi   : inclusive range
//   - in:a,b,c        : value must be in the list
//   - not_in:a,b,c    : value must NOT be in the list
//   - regex:pattern   : must match the pattern
//
// Size rules compare the value itself on fields that are also integer or
// numeric, and the number of characters otherwise.
package validation
