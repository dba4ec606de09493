// Package selection reduces a set of declared candidates to at most one
// selected candidate, honoring an explicit override, a declared default and a
// "must resolve or fail" policy.
//
// # Alias Map
//
// Every candidate is reachable through its declared aliases and through its
// own identity (typically a version string). [BuildAliasMap] registers the
// aliases of each candidate in input order, then the identity unless the
// candidate already declared it as an alias. Registering a key that another
// candidate already owns aborts with a [SelectionError] whose Code is
// [CodeDuplicateAlias]; no partial map is returned.
//
// # Precedence
//
// [Select] evaluates, in this exact order:
//
//  1. Build the alias map (duplicate aliases are fatal).
//  2. If an override key is given:
//     a. an alias-map hit selects that candidate ([SourceOverride]);
//     b. otherwise, if defined versions are required, fail with
//     [CodeMissingRequiredVersion];
//     c. otherwise, the override is used as a literal ([SourceLiteral]).
//  3. If no override is given:
//     a. a declared default is selected ([SourceDefault]);
//     b. otherwise, if defined versions are required, fail with
//     [CodeMissingRequiredVersion];
//     c. otherwise, nothing is pinned ([SourceUnknown]).
//
// The default is never consulted when an override is present, even if the
// override does not match any candidate.
//
// # Determinism
//
// Given the same candidate order, override, default and policy, Select
// returns the same candidate and the same error text. Error payloads list
// implicated candidates in input order.
package selection
