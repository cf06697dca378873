// Package transfer wraps the transfer::two_by_two helper module, which
// splits an amount between two destination accounts in one transaction.
package transfer
