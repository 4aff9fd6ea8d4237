/*
Package cash defines a simple balance store holding a single fungible asset.

There is no logic in the asset, except that no balance may go below zero
and no balance may exceed 256 bits. Thus, this implementation is referred
to as cash. Simple and safe.

Token exposes the same balances as a call target understanding the
transfer(address,uint256) and balanceOf(address) calls, so that a custody
account can move its balance both with a transfer and with a forwarded call.
*/
package cash
