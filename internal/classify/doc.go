// Package classify decides, field by field, whether a record field is
// required or wrapped in the reserved Optional type.
//
// The check is a shallow match on the name of the outermost type
// constructor. It never resolves the type, so a user type that happens to be
// called Optional is treated as the wrapper too.
package classify
