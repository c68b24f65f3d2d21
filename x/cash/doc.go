/*
Package cash defines a simple implementation of sending value
between wallets.

There is a single native unit of value and no logic in it, except
that the balance of any wallet may not go below zero nor above the
maximum uint64 value. Challenge fees are collected through this
package into the registry treasury.
*/
package cash
