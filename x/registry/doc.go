/*
Package registry holds the authorization registry of the chain.

The registry is a singleton configuration created from genesis. It names an
admin, the treasury that collects challenge fees, a deployment tag and the
bounded sets of API signers and moderators. Other extensions only read it,
through IsMember and Treasury.
*/
package registry
