/*
Package trinity holds the interfaces shared by the ledger packages: the
key value store, messages and transactions, handlers with the decorators
around them, and the context values a block carries.

The concrete pieces live in subpackages. app drives the ABCI lifecycle,
store and store/iavl keep the state, orm maps records onto buckets, and the
extensions under x/ implement the messages, with x/challenge running the
two player wagers.

Block scoped values go into the context through a pair of functions, a
WithX that panics when X is already set and a GetX that reports whether it
was. Only the logger may be replaced.
*/
package trinity
