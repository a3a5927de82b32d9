// Package registry provides the central "glue" for the module system.
//
// The Registry owns every data type, context type and node type known to an
// application instance, together with the tags and groups used to organise node
// types and the decoders that rebuild groups from their serialized form.
// Modules populate it at startup; identifiers are always resolved through an
// explicit Registry value rather than through package-level state.
//
// After all modules have registered, ValidateRegistry checks that every node
// type's factory produces nodes consistent with the registry, preventing a
// wide class of evaluation-time errors.
package registry
