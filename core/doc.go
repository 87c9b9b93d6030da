// Package core contains the App Check verification client, its collaborator
// contracts and the error taxonomy. Transport adapters depend on this package;
// core must not depend on transport-specific adapters.
package core
