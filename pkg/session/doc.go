/*
Package session implements session management and persistence orchestration.

It serializes the turns of each user behind a reference-counted in-process mutex,
optionally backed by a distributed lock so that replicas sharing one store do not
interleave read-modify-write cycles on the same conversation.
*/
package session
