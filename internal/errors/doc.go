// Package errors provides structured error handling for the character API.
//
// Errors carry a Code, a user-facing Message, an optional wrapped Cause,
// and arbitrary Meta for debugging context. Codes map onto HTTP status
// codes at the handler boundary via Code.HTTPStatus.
//
// Creating errors:
//
//	return errors.NotFoundf("character %s not found", id)
//	return errors.InvalidSelection("phb:stealth is not an option for this choice")
//
// Wrapping errors preserves the original code:
//
//	if err != nil {
//		return errors.Wrap(err, "failed to load character")
//	}
//
// Field-level validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//		return err
//	}
//
// Checking error types:
//
//	if errors.IsNotFound(err) { ... }
//	if errors.IsConflict(err) { ... }
package errors
