// Package satfolio provides the types and functions to track a personal Bitcoin
// portfolio. It is designed to be local-first: the ledger, the settings and the
// last known prices live in plain files the user owns.
//
// The core functionalities include:
//   - Ledger Management: recording buy and sell entries, in satoshis, in a
//     chronological JSONL ledger.
//   - Market Data: fetching the BTC exchange rate in the user's fiat currency,
//     with a local cache and an explicit staleness policy.
//   - Statistics: a stateless computation of holdings, average cost and
//     unrealized profit or loss.
//   - Conversion: exact fiat to satoshi conversions at the current rate.
//
// The cumulative holdings series and its chart geometry live in the series and
// chart subpackages; the `sfc` command line tool ties everything together.
package satfolio
