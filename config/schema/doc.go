// Package schema validates a merged configuration tree against a closed set
// of typed fields.
//
// A Schema declares each field by dotted path, kind and default. Validate
// reads every declared field from the merged tree and, depending on the
// Policy, either replaces a mistyped field with its default (PolicyPartial)
// or rejects the whole tree (PolicyStrict). Paths the schema does not declare
// are reported in Result.Unknown and otherwise ignored.
package schema
