// Package derive is the runtime support imported by code that derive-gen
// emits.
//
// Generated builders store every field in an Optional slot and report
// unset required fields with *MissingFieldError. Generated Format methods
// render records through DebugStruct.
//
// The generator recognizes optional fields by the type name Optional alone,
// so any generic type called Optional that also has a Some constructor next
// to it is treated the same way.
package derive
