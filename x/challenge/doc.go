/*
Package challenge implements a two party wager settled by moderators.

A challenge is created by a trusted API signer for two parties. Each party
pays a service fee into the registry treasury and escrows one unit of its
asset into a custody address owned by the challenge. Trusted moderators then
vote independently on the outcome. The first outcome that gathers three
votes finalizes the challenge: the winner claims both escrowed units, or on
cancellation each party claims its own unit back.

The lifecycle is strictly ordered:

	PendingFee -> PendingEscrow -> Ready -> Completed
	                                     -> Cancelled

A cancellation quorum can be reached from any non terminal status.
Completed and Cancelled are terminal.
*/
package challenge
