/*
Package asset keeps a ledger of non-fungible asset units.

Every mint identifies one asset kind. A holding records how many units of a
mint an owner has. Units can only be moved between owners; creation happens
at genesis. Challenges escrow their stakes by moving a unit into a custody
address they control.
*/
package asset
