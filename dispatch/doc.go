// Package dispatch classifies arbitrary errors against a Catalog, logs them
// at the severity of the policy that applies, and renders them as responses.
//
// Every error falls into exactly one of three classifications, checked in
// order:
//
//  1. Wrapped: the runtime type of the error is a wrap source in the
//     catalog. The error is replaced by an instance of its wrapper (the
//     original is kept for diagnostics) and handled at the wrapper's
//     severity.
//  2. Registered: the error is a *variant.Error whose definition name is
//     registered. It is handled at its own severity and renders itself.
//  3. Unknown: anything else. Logged at error, rendered as a 500
//     "UnknownError" carrying the raw message.
//
// Stacks are attached to responses only in development mode.
package dispatch
