// Package registry builds complete name registry requests: the encoded
// payload plus the ordered, flag-annotated account list the execution host
// expects for each operation.
//
// Account order and flags are a protocol contract. Two optional-account
// conventions coexist and must not be unified:
//   - fixed-position slots keep their index and carry identity.Placeholder
//     when the participant is absent (Create's class and parent)
//   - variable-tail slots are appended only when present, and the host detects
//     them by list length (Create's parent owner, Update's parent, Transfer's class)
package registry
