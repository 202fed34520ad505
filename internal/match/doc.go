// Package match provides identifier similarity scoring used to attach
// "did you mean" suggestions to unknown-field and unknown-key diagnostics.
package match
