// Package stockfolio is a portfolio valuation and return-calculation
// engine.
//
// It tracks positions with the moving-average cost method (plain or
// split-adjusted), computes realized and unrealized profit and loss,
// solves annualized returns (XIRR) over irregular-dated cash flows, and
// provides the Modified Dietz and time-weighted return calculators. A
// multi-currency ledger engine maintains a moving-average cost basis for
// foreign-currency balances and imputes historical exchange rates for
// ledger-funded purchases with a LIFO cash-flow-tracing heuristic.
//
// Everything is computed on demand from an immutable input snapshot: the
// engine holds no mutable state, performs no I/O, and never logs.
// Numerically undefined results (an unsolvable XIRR, a non-positive
// Modified Dietz denominator) are reported as explicit absence, never as a
// stand-in number. Surrounding layers own persistence, transport and
// presentation.
package stockfolio
