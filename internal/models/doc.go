// Package models defines the core domain models for BORGA.
//
// # Models
//
//   - User: registered account, owns a set of named groups
//   - Group: a user's named collection of favorite games
//   - Game: a board-game record sourced from the external catalog
//
// # Design Principles
//
//  1. **Reference, don't own**: groups hold gameId→gameName references;
//     the authoritative game record lives in the process-wide catalog
//     cache and is shared across groups and users.
//  2. **Avoid circular references**: relationships use ID strings, not
//     pointers.
//  3. **Storage-agnostic**: the same structs round-trip through the
//     in-memory store and the SQLite store unchanged.
package models
