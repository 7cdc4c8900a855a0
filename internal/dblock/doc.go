// Package dblock serializes access to a shared .astdb database directory
// across independent CLI processes.
//
// Coordination happens entirely through a single lock-record file at
// <workspace>/.astdb/.lock. The record is JSON describing the current
// holder (id, type, operation, acquiredAt, timeoutMs, pid) and is always
// published by atomic rename, so readers observe either a complete record
// or no file at all.
//
// A record is valid while its timeout has not elapsed and its owning
// process is still running. Any acquirer that finds a stale record removes
// it before writing its own, so locks left behind by crashed or expired
// owners heal without operator intervention.
//
// Writers are exclusive: a valid exclusive record conflicts with every
// other request. Shared holders may coexist with each other, but the file
// only ever carries the most recent shared holder's record — each shared
// acquisition overwrites the previous one. See the Manager documentation
// for what that means for release.
package dblock
