// Package diagnostic provides located, severity-tagged errors for the
// dto generator pipeline.
//
// All stages write into a shared accumulator; nothing is surfaced until the
// whole declaration has been processed, so a user sees every problem at once,
// sorted by source position.
package diagnostic
