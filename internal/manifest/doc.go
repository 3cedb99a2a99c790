// Package manifest reads package.json files. Read returns the parsed manifest
// or a descriptive error; ReadVersion is the best-effort variant used while
// scanning registries and never fails. Validate checks the fields linking
// depends on against an embedded JSON schema.
package manifest
